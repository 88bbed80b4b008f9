package components

// PositionComponent 控件根节点在屏幕上的左上角位置
type PositionComponent struct {
	X, Y float64
}

// NodeComponent 布局系统计算出的节点矩形（屏幕坐标，像素）
type NodeComponent struct {
	X, Y          float32
	Width, Height float32

	// 本帧尺寸发生了变化（布局系统设置，帧末清除）
	Changed bool
}

// Size 返回节点宽高
func (n *NodeComponent) Size() (float32, float32) {
	return n.Width, n.Height
}

// Contains 点是否在节点矩形内（含边界）
func (n *NodeComponent) Contains(x, y float32) bool {
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// SetRect 更新矩形，尺寸变化时标记 Changed
func (n *NodeComponent) SetRect(x, y, w, h float32) {
	if n.Width != w || n.Height != h {
		n.Changed = true
	}
	n.X, n.Y, n.Width, n.Height = x, y, w, h
}

// StyleComponent 节点相对父节点的偏移（滑块手柄的位置由此表示）
type StyleComponent struct {
	Left float32 // 水平滑块使用
	Top  float32 // 垂直滑块使用
}

// TextComponent 节点显示的文字
type TextComponent struct {
	Text string
}

// VisibilityComponent 节点是否显示
type VisibilityComponent struct {
	Visible bool
}

// NameComponent 调试用的实体名称
type NameComponent struct {
	Name string
}

// ParamSliderLayoutComponent 滑块布局参数
type ParamSliderLayoutComponent struct {
	// 滑槽容器沿主轴的长度（像素）
	Length float32
}
