/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/sumwatshade/winddash/cmd"

func main() {
	cmd.Execute()
}
