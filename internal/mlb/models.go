package mlb

// Wire shapes for the three statsapi endpoints this service touches. Only
// the fields the detector needs are decoded; everything else in the feed
// (plays, box score, weather) is ignored.

// scheduleResponse is /api/v1/schedule/games/?sportId=1.
type scheduleResponse struct {
	Dates []struct {
		Games []struct {
			GamePk int `json:"gamePk"`
			Status struct {
				AbstractGameState string `json:"abstractGameState"`
			} `json:"status"`
		} `json:"games"`
	} `json:"dates"`
}

// feedResponse is /api/v1.1/game/{gamePk}/feed/live.
type feedResponse struct {
	GamePk   int `json:"gamePk"`
	GameData struct {
		Status struct {
			AbstractGameState string `json:"abstractGameState"`
		} `json:"status"`
		Teams struct {
			Home feedTeam `json:"home"`
			Away feedTeam `json:"away"`
		} `json:"teams"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			CurrentInning        int    `json:"currentInning"`
			CurrentInningOrdinal string `json:"currentInningOrdinal"`
			InningHalf           string `json:"inningHalf"`
			InningState          string `json:"inningState"`
			Teams                struct {
				Home feedLine `json:"home"`
				Away feedLine `json:"away"`
			} `json:"teams"`
		} `json:"linescore"`
	} `json:"liveData"`
}

type feedTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type feedLine struct {
	Runs int `json:"runs"`
	Hits int `json:"hits"`
}

// teamsResponse is /api/v1/teams.
type teamsResponse struct {
	Teams []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		TeamCode string `json:"teamCode"`
		Sport    struct {
			ID int `json:"id"`
		} `json:"sport"`
	} `json:"teams"`
}

// TeamInfo is an MLB team as listed by the teams endpoint, used for seeding.
type TeamInfo struct {
	ID   int
	Name string
	Code string
}
