package components

import (
	"github.com/automoto/fightcore/shared/messages"
	"github.com/yohamta/donburi/features/events"
)

// HitEvent carries applied hits to subscribers. Events are delivered when the
// step processes its queue, after every hit of the step has been applied.
var HitEvent = events.NewEventType[messages.HitEvent]()
