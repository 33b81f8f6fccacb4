package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current uint32
	Max     uint32
}

var Health = donburi.NewComponentType[HealthData]()
