package dto

// NotEnoughData is shown in place of metrics that need at least one session.
const NotEnoughData = "Not enough data"

type BarOutput struct {
	Day     string
	Label   string
	Minutes int
}

type HistogramOutput struct {
	Bars    []BarOutput
	Ceiling int
}

type WeekdayOutput struct {
	Weekday string
	HasData bool
}

type AverageOutput struct {
	Minutes int
	HasData bool
}

type ReportOutput struct {
	Streak                int
	TotalHours            float64
	CompletionRate        int
	AverageSessionMinutes AverageOutput
	MostProductiveWeekday WeekdayOutput
	Last7Days             HistogramOutput
}
