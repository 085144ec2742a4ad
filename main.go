/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/taskrank/cmd"
	"github.com/josephgoksu/taskrank/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
