package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/pfs-agent/misc"
	"github.com/nspcc-dev/pfs-agent/pkg/util/grace"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func fatalOnErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func fatalOnErrDetails(details string, err error) {
	if err != nil {
		log.Fatal(fmt.Errorf("%s: %w", details, err))
	}
}

func main() {
	configFile := pflag.StringP("config", "c", "", "path to config")
	versionFlag := pflag.BoolP("version", "v", false, "show version")
	pflag.Parse()

	if *versionFlag {
		fmt.Print(misc.BuildInfo("PFS Agent"))

		os.Exit(0)
	}

	c := initCfg(*configFile)

	initApp(c)

	c.log.Info("starting agent",
		zap.String("version", misc.Version),
		zap.String("data_dir", c.dataDir),
	)

	bootUp(c)

	wait(c)

	shutdown(c)
}

func initApp(c *cfg) {
	c.ctx = grace.NewGracefulContext(c.log)

	fatalOnErrDetails("prepare data directory", c.acquireLock())

	initMetrics(c)
	initEngine(c)
	initIndexer(c)
}

func bootUp(c *cfg) {
	serveMetrics(c)
	startWorkers(c)

	c.setHealthy(true)
	c.log.Info("agent is ready")
}

func wait(c *cfg) {
	<-c.ctx.Done()

	c.setHealthy(false)
	c.log.Info("termination signal has been received, stopping...")
}

func shutdown(c *cfg) {
	c.wg.Wait()

	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}

	c.log.Info("agent has been stopped")
	_ = c.log.Sync()
	_ = c.closeLog()
}
