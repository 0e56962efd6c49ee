package window

// TaskbarHeight is the strip at the bottom of the desktop that maximized
// windows leave uncovered.
const TaskbarHeight = 48

// Minimum window size accepted by UpdateGeometry
const (
	MinWidth  = 200
	MinHeight = 150
)

const (
	cascadeOriginX = 100
	cascadeOriginY = 50
	cascadeStep    = 30
)

var defaultSize = Size{Width: 800, Height: 600}

var sizeByTitle = map[string]Size{
	TitleSettings:    {Width: 1000, Height: 700},
	TitleTerminal:    {Width: 900, Height: 550},
	TitleTaskManager: {Width: 700, Height: 600},
}

// SizeFor returns the initial size for a new window titled title
func SizeFor(title string) Size {
	if s, ok := sizeByTitle[title]; ok {
		return s
	}
	return defaultSize
}

// CascadePosition returns the top-left corner of the next window when n
// windows are already open.
func CascadePosition(n int) (x, y int) {
	return cascadeOriginX + n*cascadeStep, cascadeOriginY + n*cascadeStep
}

func clampGeometry(g Geometry) Geometry {
	if g.Y < 0 {
		g.Y = 0
	}
	if g.Width < MinWidth {
		g.Width = MinWidth
	}
	if g.Height < MinHeight {
		g.Height = MinHeight
	}
	return g
}
