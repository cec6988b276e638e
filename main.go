package main

import "github.com/nataliekozlowskii/lab-data-processing/cmd"

func main() {
	cmd.Execute()
}
