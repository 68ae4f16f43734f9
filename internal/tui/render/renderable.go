package render

// Renderable 是能按宽度自行排版的一块内容。
type Renderable interface {
	Render(area Rect, buf *Buffer)
	DesiredHeight(width int) int
}

// Stack 自上而下排列各块；area.Height 为 0 时不限高，否则超出部分截掉。
type Stack []Renderable

func (s Stack) Render(area Rect, buf *Buffer) {
	used := 0
	for _, r := range s {
		h := r.DesiredHeight(area.Width)
		if area.Height > 0 {
			if used >= area.Height {
				return
			}
			h = min(h, area.Height-used)
		}
		r.Render(Rect{X: area.X, Y: area.Y + used, Width: area.Width, Height: h}, buf)
		used += h
	}
}

func (s Stack) DesiredHeight(width int) int {
	total := 0
	for _, r := range s {
		total += r.DesiredHeight(width)
	}
	return total
}
