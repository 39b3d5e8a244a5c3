// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command folio runs the portfolio API server and its operator tooling:
// migrations, seeding, and terminal clients for listing, stats and voting.
package main

func main() {
	Execute()
}
