package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Raw ESPN payloads. Every field is optional upstream; the formatter in
// internal/api/espn supplies defaults.

type ScoreboardResponse struct {
	Events []Event `json:"events"`
	Week   *Week   `json:"week,omitempty"`
}

type Week struct {
	Number int `json:"number"`
}

type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Week         *Week         `json:"week,omitempty"`
	Competitions []Competition `json:"competitions"`
	Status       *Status       `json:"status,omitempty"`
}

type Competition struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Competitors []Competitor `json:"competitors"`
	Status      *Status      `json:"status,omitempty"`
}

type Competitor struct {
	ID       string   `json:"id"`
	HomeAway string   `json:"homeAway"`
	Score    Score    `json:"score"`
	Team     *TeamRef `json:"team,omitempty"`
}

type TeamRef struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Location         string `json:"location"`
}

type Status struct {
	Type *StatusType `json:"type,omitempty"`
}

type StatusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// Score holds a competitor score exactly as sent. ESPN mixes "24", 24 and
// null across endpoints, so all three decode without error.
type Score string

func (s *Score) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Score(str)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		// objects like {"value": 21} show up on the core API
		var obj struct {
			Value        *float64 `json:"value"`
			DisplayValue string   `json:"displayValue"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*s = ""
		if obj.DisplayValue != "" {
			*s = Score(obj.DisplayValue)
		} else if obj.Value != nil {
			*s = Score(strconv.FormatFloat(*obj.Value, 'f', -1, 64))
		}
		return nil
	}
	*s = Score(raw)
	return nil
}

type TeamsPage struct {
	Items     []TeamItem `json:"items"`
	Count     int        `json:"count"`
	PageIndex int        `json:"pageIndex"`
	PageSize  int        `json:"pageSize"`
	PageCount int        `json:"pageCount"`
}

type TeamItem struct {
	Ref              string    `json:"$ref"`
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DisplayName      string    `json:"displayName"`
	ShortDisplayName string    `json:"shortDisplayName"`
	Abbreviation     string    `json:"abbreviation"`
	Location         string    `json:"location"`
	Conference       *NamedRef `json:"conference,omitempty"`
	Division         *NamedRef `json:"division,omitempty"`
}

type NamedRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type AthletesResponse struct {
	Items     []Athlete `json:"items"`
	Count     int       `json:"count"`
	PageCount int       `json:"pageCount"`
}

type Athlete struct {
	Ref           string      `json:"$ref"`
	ID            string      `json:"id"`
	FullName      string      `json:"fullName"`
	DisplayName   string      `json:"displayName"`
	Jersey        string      `json:"jersey"`
	Position      *Position   `json:"position,omitempty"`
	Height        *float64    `json:"height,omitempty"`
	DisplayHeight string      `json:"displayHeight"`
	Weight        *float64    `json:"weight,omitempty"`
	DisplayWeight string      `json:"displayWeight"`
	Age           *int        `json:"age,omitempty"`
	Experience    *Experience `json:"experience,omitempty"`
	Team          *TeamRef    `json:"team,omitempty"`
	College       *NamedRef   `json:"college,omitempty"`
}

type Position struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type Experience struct {
	Years *int `json:"years,omitempty"`
}

// SummaryResponse is the site API's per-game summary. The header's week is a
// bare number here, unlike the scoreboard.
type SummaryResponse struct {
	Header   *SummaryHeader `json:"header,omitempty"`
	Boxscore *Boxscore      `json:"boxscore,omitempty"`
}

type SummaryHeader struct {
	ID           string        `json:"id"`
	Week         int           `json:"week"`
	Competitions []Competition `json:"competitions"`
}

type Boxscore struct {
	Teams   []BoxscoreTeam    `json:"teams"`
	Players []BoxscorePlayers `json:"players"`
}

type BoxscoreTeam struct {
	Team       *TeamRef   `json:"team,omitempty"`
	HomeAway   string     `json:"homeAway"`
	Statistics []TeamStat `json:"statistics"`
}

type TeamStat struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	DisplayValue string `json:"displayValue"`
}

type BoxscorePlayers struct {
	Team       *TeamRef          `json:"team,omitempty"`
	Statistics []PlayerStatGroup `json:"statistics"`
}

// PlayerStatGroup is one category (passing, rushing, ...). Each athlete's
// Stats line up with Labels.
type PlayerStatGroup struct {
	Name     string         `json:"name"`
	Labels   []string       `json:"labels"`
	Athletes []AthleteStats `json:"athletes"`
}

type AthleteStats struct {
	Athlete *Athlete `json:"athlete,omitempty"`
	Stats   []string `json:"stats"`
}
