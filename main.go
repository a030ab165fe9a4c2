package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"agencybooks/config"
	"agencybooks/database"
	"agencybooks/router"
	"agencybooks/service"
	"agencybooks/store"

	"golang.org/x/sync/errgroup"
)

// @title 旅行社账本 API
// @version 1.0
// @description 旅行社记账系统 API，支持支出、销售、供应商付款、员工工资管理，统计看板与报表导出
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("旅行社账本 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	// 初始化数据库
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 读取已有记录
	records := store.New(database.NewKVStore(database.DB))
	if err := records.Load(ctx); err != nil {
		log.Fatalf("读取记录失败: %v", err)
	}
	records.Subscribe(func(change store.Change) {
		log.Printf("记录已保存: %s", strings.Join(change.Keys, ", "))
	})

	clock := service.NewClock(cfg.Clock)
	mailer := service.NewMailer(cfg.Email)

	// 设置路由
	r := router.SetupRouter(cfg, router.Deps{
		Store:  records,
		Clock:  clock,
		Mailer: mailer,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return clock.Run(gctx)
	})

	g.Go(func() error {
		log.Printf("==========================================")
		log.Printf("  ✈️  旅行社账本已启动")
		log.Printf("==========================================")
		log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
		log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
		log.Printf("==========================================")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("正在关闭服务器...")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("服务器运行失败: %v", err)
	}
	log.Println("服务器已关闭")
}
