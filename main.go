package main

import (
	"github.com/3550453790cl-arch/lhb-dashboard/internal/cli"
)

func main() {
	cli.Run()
}
