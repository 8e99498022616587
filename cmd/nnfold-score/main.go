// cmd/nnfold-score/main.go
package main

import (
	"nnfold/internal/appshell"
	"nnfold/internal/scoreapp"
)

func main() { appshell.Main(scoreapp.RunContext) }
