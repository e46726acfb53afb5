package dto

type TimerOutput struct {
	Minutes           int
	Seconds           int
	State             string
	ConfiguredMinutes int
	Display           string
}

type ConfigureInput struct {
	Minutes int
}

// TimerEvent is published for each tick. Completed is set on the finishing
// tick; RecordError carries a failure to store the finished session.
type TimerEvent struct {
	Timer            TimerOutput
	Completed        bool
	CompletedMinutes int
	RecordError      string
}
