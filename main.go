package main

import "github.com/openledger/yalc/cmd/yalc"

func main() {
	yalc.Execute()
}
