package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule / WebModule 模块按实现的接口挂到对应分组
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type WebModule interface{ MountWeb(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），默认 100
type prioritizer interface{ Priority() int }

// Registry 显式构建、显式传递，不做包级单例
type Registry struct {
	apiMods []APIModule
	webMods []WebModule
}

func NewRegistry() *Registry { return &Registry{} }

// Add 按类型断言分发到 API/Web 列表（一个模块可以两边都挂）
func (r *Registry) Add(mods ...any) *Registry {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.apiMods = append(r.apiMods, m)
		}
		if m, ok := mod.(WebModule); ok {
			r.webMods = append(r.webMods, m)
		}
	}
	return r
}

func (r *Registry) MountAPI(api *gin.RouterGroup) {
	mods := append([]APIModule(nil), r.apiMods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func (r *Registry) MountWeb(web *gin.RouterGroup) {
	mods := append([]WebModule(nil), r.webMods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountWeb(web)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
