// cmd/drumsheet/main.go
package main

func main() {
	Execute()
}
