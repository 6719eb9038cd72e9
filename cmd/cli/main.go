package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/showformatterpro/showformatterpro/internal/config"
	"github.com/showformatterpro/showformatterpro/internal/service"
	"github.com/showformatterpro/showformatterpro/pkg/logger"

	"github.com/showformatterpro/showformatterpro/addone/parse"
	_ "github.com/showformatterpro/showformatterpro/addone/parse/platforms/cisco_ios"
)

// stringList 可重复出现的命令行参数（-filter key=regex -filter ...）
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "config file path (optional)")
		platform   = flag.String("platform", "cisco_ios", "device platform")
		command    = flag.String("command", "", "show command the input was produced by (required)")
		output     = flag.String("o", "", "CSV output path (default: input path with .csv extension)")
		noDump     = flag.Bool("no-dump", false, "do not print records to stdout")
		noSave     = flag.Bool("no-save", false, "do not write CSV")
		persist    = flag.Bool("persist", false, "store parsed records into the database")
		diffMode   = flag.Bool("diff", false, "route diff mode: compare two 'show ip route' outputs")
		maskFilter = flag.String("mask", "", "route mask length filter, e.g. 24 or ge:24 (diff/route mode)")
		filters    stringList
	)
	flag.Var(&filters, "filter", "record filter key=regex, repeatable")
	flag.Parse()

	// 配置可缺省：读不到配置文件时回退到内置默认值
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "console",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	svc := service.NewFormatService(cfg)
	ctx := context.Background()

	if *diffMode {
		runDiff(ctx, svc, flag.Args(), filters, *maskFilter)
		return
	}

	if *command == "" {
		fmt.Fprintln(os.Stderr, "usage: formatter -command \"show ...\" [flags] [file|-]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// 无位置参数时读取标准输入
	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	allFilters := append([]string(nil), filters...)
	if *maskFilter != "" {
		allFilters = append(allFilters, "mask:"+*maskFilter)
	}

	exitCode := 0
	for _, path := range inputs {
		res, err := svc.FormatFile(ctx, service.FormatFileRequest{
			Path:     path,
			Platform: *platform,
			Command:  *command,
			Filters:  allFilters,
			Persist:  *persist,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			exitCode = 1
			continue
		}

		if !*noDump {
			service.DumpRecords(os.Stdout, res.Fieldnames, res.Records, cfg.Format.RightJust)
		}
		if !*noSave {
			out := parse.ParseOutput{
				Platform:   res.Platform,
				Command:    res.Command,
				Table:      res.Table,
				Fieldnames: res.Fieldnames,
				Records:    res.Records,
			}
			csvPath := *output
			if csvPath == "" {
				csvPath = svc.DefaultCSVPath(path)
			}
			if err := service.SaveCSV(out, csvPath); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				exitCode = 1
			}
		}
	}
	os.Exit(exitCode)
}

// runDiff 路由差分模式：两个位置参数分别为迁移前后的回显文件
func runDiff(ctx context.Context, svc *service.FormatService, args []string, filters stringList, maskFilter string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: formatter -diff [flags] before.log after.log")
		os.Exit(2)
	}
	all := append([]string(nil), filters...)
	if maskFilter != "" {
		all = append(all, "mask:"+maskFilter)
	}
	res, err := svc.DiffRouteFiles(ctx, args[0], args[1], all)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("before: %d entries, after: %d entries, common: %d\n",
		res.BeforeCount, res.AfterCount, res.CommonCount)
	fmt.Printf("---- removed (%d) ----\n", len(res.Removed))
	for _, e := range res.Removed {
		fmt.Println("  - " + e.String())
	}
	fmt.Printf("---- added (%d) ----\n", len(res.Added))
	for _, e := range res.Added {
		fmt.Println("  + " + e.String())
	}
}
