package parse

import "sync"

var (
	registryMu sync.RWMutex
	registry   = map[string]ParsePlugin{
		"default": &DefaultPlugin{},
	}
)

// Register 注册平台解析插件
func Register(name string, plugin ParsePlugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = plugin
}

// Get 获取指定平台的解析插件
func Get(name string) ParsePlugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if p, ok := registry[name]; ok {
		return p
	}
	return registry["default"]
}

// Platforms 返回已注册平台名（不含 default）
func Platforms() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		if name == "default" {
			continue
		}
		names = append(names, name)
	}
	return names
}
