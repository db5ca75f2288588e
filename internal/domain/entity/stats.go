package entity

// Counter tracks a value for the current playthrough loop and in total
type Counter struct {
	Current uint32 `json:"current"`
	Total   uint32 `json:"total"`
}

func (c *Counter) add() {
	c.Current++
	c.Total++
}

// Stats holds persisted gameplay counters keyed by level name
type Stats struct {
	Deaths      map[string]Counter               `json:"deaths"`
	Kills       map[string]map[EnemyType]Counter `json:"kills"`
	ItemsBought map[string]Counter               `json:"items_bought"`
	Wins        uint32                           `json:"wins"`
}

// NewStats returns empty stats
func NewStats() Stats {
	return Stats{
		Deaths:      make(map[string]Counter),
		Kills:       make(map[string]map[EnemyType]Counter),
		ItemsBought: make(map[string]Counter),
	}
}

func (s *Stats) ensure() {
	if s.Deaths == nil {
		s.Deaths = make(map[string]Counter)
	}
	if s.Kills == nil {
		s.Kills = make(map[string]map[EnemyType]Counter)
	}
	if s.ItemsBought == nil {
		s.ItemsBought = make(map[string]Counter)
	}
}

// AddDeath counts a death in level
func (s *Stats) AddDeath(level string) {
	s.ensure()
	c := s.Deaths[level]
	c.add()
	s.Deaths[level] = c
}

// AddKill counts a killed enemy of type t in level
func (s *Stats) AddKill(level string, t EnemyType) {
	s.ensure()
	perType, ok := s.Kills[level]
	if !ok {
		perType = make(map[EnemyType]Counter)
		s.Kills[level] = perType
	}
	c := perType[t]
	c.add()
	perType[t] = c
}

// AddItemBought counts a purchased item in level
func (s *Stats) AddItemBought(level string) {
	s.ensure()
	c := s.ItemsBought[level]
	c.add()
	s.ItemsBought[level] = c
}

// AddWin counts a completed playthrough
func (s *Stats) AddWin() {
	s.Wins++
}

// ResetCurrent zeroes every per-loop counter, keeping totals
func (s *Stats) ResetCurrent() {
	for level, c := range s.Deaths {
		c.Current = 0
		s.Deaths[level] = c
	}
	for _, perType := range s.Kills {
		for t, c := range perType {
			c.Current = 0
			perType[t] = c
		}
	}
	for level, c := range s.ItemsBought {
		c.Current = 0
		s.ItemsBought[level] = c
	}
}
