package tui

// Layout constants, in terminal cells.
const (
	HeaderHeight = 3 // bordered stats line
	FooterHeight = 1 // status / hint line

	ChartBorderWidth  = 2 // left + right border of the chart box
	ChartBorderHeight = 2 // top + bottom border of the chart box

	MinChartCols = 20
	MinChartRows = 8
)

// RecentSymbolLimit caps the recent list shown in an empty ticker prompt.
const RecentSymbolLimit = 10

// PromptListLimit caps the visible search matches in the ticker prompt.
const PromptListLimit = 10

// Settings menu rows, in display order.
const (
	settingsItemIndicators = iota
	settingsItemRange
	settingsItemInterval
	settingsItemChartType
	settingsItemViewMode
	settingsItemTimeFormat
	settingsItemShowHeader
	settingsItemClose
	settingsItemCount
)
