package components

import "github.com/gonewx/paramslider/pkg/params"

// ParamBindingComponent 滑块绑定的宿主参数句柄
//
// 创建滑块时绑定，之后不再更换；手势系统通过它找到要编辑的参数。
type ParamBindingComponent struct {
	Param params.Param
}
