// Command imgcompose crops and resizes images, lays image sequences out as
// PDF pages, and serves both as MCP tools over stdio.
package main

func main() {
	Execute()
}
