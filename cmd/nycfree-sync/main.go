package main

import "github.com/nycfree/calendar-sync/internal/cli"

func main() {
	cli.Execute()
}
