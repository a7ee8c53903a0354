package utils

// ChartColors defines a palette of distinct colors for chart visualization
// These colors are designed to be easily distinguishable from each other
// Using a soft qualitative palette suited for country comparison charts
var ChartColors = []string{
	"#66c5cc", // Teal
	"#f6cf71", // Yellow
	"#f89c74", // Orange
	"#dcb0f2", // Lilac
	"#87c55f", // Green
	"#9eb9f3", // Periwinkle
	"#fe88b1", // Pink
	"#c9db74", // Lime
	"#8be0a4", // Mint
	"#b497e7", // Purple
	"#d3b484", // Tan
	"#b3b3b3", // Gray
}

// GetChartColor returns a color from the chart color palette
// If the index exceeds the palette size, it cycles back to the beginning
func GetChartColor(index int) string {
	return ChartColors[index%len(ChartColors)]
}
