package schedule

// RoundRobin returns a double round robin schedule for n competitors, seated
// 0 through n-1, using the circle method. An odd field is padded with the
// Bye. For the padded field size m, the schedule consists of the m-1 home
// fixture sets followed by their m-1 mirrored away fixture sets, so every
// pair of competitors meets exactly twice with the seats swapped.
func RoundRobin(n int) (Schedule, error) {
	if n < 2 {
		return nil, &ScheduleError{Competitors: n}
	}

	circle := make([]Seat, n, n+1)
	for i := range circle {
		circle[i] = Seat(i)
	}

	if n%2 == 1 {
		circle = append(circle, Bye)
	}

	player_count := len(circle)
	half := player_count / 2

	home := make(Schedule, 0, player_count-1)
	away := make(Schedule, 0, player_count-1)

	for round := 1; round < player_count; round++ {
		home_set := make(FixtureSet, half)
		away_set := make(FixtureSet, half)

		for i := 0; i < half; i++ {
			pairing := Pairing{Home: circle[i], Away: circle[player_count-1-i]}
			home_set[i] = pairing
			away_set[i] = pairing.Reverse()
		}

		home = append(home, home_set)
		away = append(away, away_set)

		// The first seat stays fixed while the others rotate by one.
		last_elem := circle[player_count-1]
		copy(circle[2:], circle[1:player_count-1])
		circle[1] = last_elem
	}

	return append(home, away...), nil
}
