package main

import "github.com/deppfellow/expense-tracker/internal/cli"

func main() {
	cli.Execute()
}
