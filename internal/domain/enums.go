package domain

type SessionType string

const (
	SessionRun      SessionType = "run"
	SessionBike     SessionType = "bike"
	SessionSwim     SessionType = "swim"
	SessionBrick    SessionType = "brick"
	SessionStrength SessionType = "strength"
	SessionRest     SessionType = "rest"
	SessionCross    SessionType = "cross"
)

type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusCompleted SessionStatus = "completed"
	StatusModified  SessionStatus = "modified"
	StatusSkipped   SessionStatus = "skipped"
)

type SkipReason string

const (
	SkipLife      SkipReason = "life"
	SkipTired     SkipReason = "tired"
	SkipInjured   SkipReason = "injured"
	SkipDidntWant SkipReason = "didnt_want_to"
)

// ValidSkipReasons is the fixed set of recognized skip reason strings.
// Anything else on a skipped record is ignored by aggregation.
var ValidSkipReasons = map[string]bool{
	"life": true, "tired": true, "injured": true, "didnt_want_to": true,
}

type StrengthTiming string

const (
	TimingNone       StrengthTiming = "none"
	TimingPre        StrengthTiming = "pre"
	TimingPost       StrengthTiming = "post"
	TimingStandalone StrengthTiming = "standalone"
)

// ValidRPELabels is the fixed set of RPE bucket labels the check-in flow
// accepts and the aggregator knows how to average.
var ValidRPELabels = map[string]bool{
	"1": true, "2-3": true, "4-5": true, "6-7": true, "8-9": true, "10": true,
}

// WeekdayKeys lists the seven day-name keys a week's days mapping may use,
// in Monday-first display order.
var WeekdayKeys = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}
