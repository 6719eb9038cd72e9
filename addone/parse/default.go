package parse

import "fmt"

// DefaultPlugin 兜底插件：未知平台不做格式化
type DefaultPlugin struct{}

func (p *DefaultPlugin) Name() string { return "default" }

func (p *DefaultPlugin) Commands() []string { return nil }

// Parse 未知平台直接报错，由上层决定是否降级为原始输出
func (p *DefaultPlugin) Parse(ctx ParseContext, lines []string) (ParseOutput, error) {
	return ParseOutput{Platform: ctx.Platform, Command: ctx.Command},
		fmt.Errorf("no parser registered for platform %q", ctx.Platform)
}
