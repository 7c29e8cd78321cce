package main

import "github.com/helioshr/policyqa/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
