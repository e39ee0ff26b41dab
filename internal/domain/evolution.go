package domain

// EvolutionType is the clause keyword that introduces an evolution.
type EvolutionType string

const (
	EvolutionBecoming    EvolutionType = "BECMG"
	EvolutionTemporary   EvolutionType = "TEMPO"
	EvolutionFrom        EvolutionType = "FM"
	EvolutionProbability EvolutionType = "probability"
)

// Evolution is a forecast change attached to one entity. FM evolutions have
// no end; BECMG, TEMPO and probability evolutions span FromDay/FromTime to
// ToDay/ToTime.
type Evolution struct {
	Type        EvolutionType `json:"type"`
	FromDay     int           `json:"from_day"`
	FromTime    string        `json:"from_time"`
	ToDay       int           `json:"to_day,omitempty"`
	ToTime      string        `json:"to_time,omitempty"`
	Probability string        `json:"probability,omitempty"`
	Cavok       bool          `json:"cavok,omitempty"`
	Entity      Entity        `json:"entity,omitempty"`
	Evolutions  []*Evolution  `json:"evolutions,omitempty"`
}

// Clone copies the clause fields and nested evolutions of e. The copy has no
// entity and no CAVOK flag, and shares no node with e.
func (e *Evolution) Clone() *Evolution {
	c := &Evolution{
		Type:        e.Type,
		FromDay:     e.FromDay,
		FromTime:    e.FromTime,
		ToDay:       e.ToDay,
		ToTime:      e.ToTime,
		Probability: e.Probability,
	}
	if len(e.Evolutions) > 0 {
		c.Evolutions = make([]*Evolution, len(e.Evolutions))
		for i, nested := range e.Evolutions {
			n := nested.Clone()
			n.Entity = nested.Entity
			n.Cavok = nested.Cavok
			c.Evolutions[i] = n
		}
	}
	return c
}
