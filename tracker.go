package arena

// UpdateTracker is the event-sink abstraction the core reports through. All
// calls are fire-and-forget: the core never inspects a call's outcome, and
// implementations must not block the controller for long (spec.md §4.7).
type UpdateTracker interface {
	Tick(frame int64)
	FoodSpawned(f *Food)
	FoodDecayed(f *Food)
	FoodConsumed(f *Food, b *Bot)
	BotSpawned(b *Bot)
	BotMoved(b *Bot, steps int)
	BotKilled(killer, victim *Bot)
	BotLogMessage(viewerKey, text string)
	BotStats(b *Bot)
}

// NopTracker discards every event. It is the default tracker for tests and
// for callers that only care about final Field state.
type NopTracker struct{}

func (NopTracker) Tick(frame int64)                     {}
func (NopTracker) FoodSpawned(f *Food)                  {}
func (NopTracker) FoodDecayed(f *Food)                  {}
func (NopTracker) FoodConsumed(f *Food, b *Bot)         {}
func (NopTracker) BotSpawned(b *Bot)                    {}
func (NopTracker) BotMoved(b *Bot, steps int)           {}
func (NopTracker) BotKilled(killer, victim *Bot)        {}
func (NopTracker) BotLogMessage(viewerKey, text string) {}
func (NopTracker) BotStats(b *Bot)                      {}
