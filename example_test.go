package fpgaflow_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/pkg/adapters/process"
	"github.com/aretw0/fpgaflow/pkg/domain"
)

// ExampleNew_dryRun shows the commands a build would run without executing any tool.
func ExampleNew_dryRun() {
	// 1. Pin the environment so the example is reproducible on any host.
	env := func(key string) (string, bool) {
		if key == "HOME" {
			return "/home/dev", true
		}
		return "", false
	}

	// 2. Replace process execution with a printer.
	o, err := fpgaflow.New(os.TempDir(),
		fpgaflow.WithPlatform(domain.PlatformPOSIX),
		fpgaflow.WithLookupEnv(env),
		fpgaflow.WithStageRunner(process.NewDryRunner(os.Stdout)),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Upload is a single stage.
	if err := o.Run(context.Background(), "upload"); err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.TrimSpace(o.Toolchain().BaseDir))
	// Output:
	// $ /home/dev/.platformio/packages/toolchain-icestorm/bin/openocd -f logicbone-jlink-windows.cfg
	// /home/dev/.platformio/packages/toolchain-icestorm/bin
}
