package main

import "punchpay/cmd"

func main() {
	cmd.Execute()
}
