package service

import (
	"unitconv/internal/conversion/models"
	id "unitconv/pkg/domain"
	"unitconv/pkg/units"
)

// value is a parsed input, erased over its dimension so the service can
// treat lengths, times, masses and speeds alike.
type value struct {
	text  string
	long  string
	units []string
	raw   any

	resolve func(target string) (resolved, bool)
	compare func(other value) (cmp int, equal bool, ok bool)
}

// resolved is a target unit bound to the value being converted.
type resolved struct {
	unit    string
	convert func() models.Conversion
}

func quantityValue[D units.Dimension](c units.Catalog[D], text string) (value, bool) {
	q, ok := c.Parse(text)
	if !ok {
		return value{}, false
	}
	return value{
		text:  q.String(),
		long:  q.LongString(),
		units: c.Shorts(),
		raw:   q,
		resolve: func(target string) (resolved, bool) {
			u, ok := c.ParseUnit(target)
			if !ok {
				return resolved{}, false
			}
			return resolved{unit: u.Short(), convert: func() models.Conversion {
				r := q.ConvertTo(u)
				return models.Conversion{Target: u.Short(), Result: r.String(), Long: r.LongString()}
			}}, true
		},
		compare: func(other value) (int, bool, bool) {
			o, ok := other.raw.(units.Quantity[D])
			if !ok {
				return 0, false, false
			}
			return q.Cmp(o), q.Equal(o), true
		},
	}, true
}

func speedValue(text string) (value, bool) {
	s, ok := units.ParseSpeed(text)
	if !ok {
		return value{}, false
	}
	return value{
		text:  s.String(),
		long:  s.LongString(),
		units: units.Speeds().Shorts(),
		raw:   s,
		resolve: func(target string) (resolved, bool) {
			u, ok := units.ParseSpeedUnit(target)
			if !ok {
				return resolved{}, false
			}
			return resolved{unit: u.Short(), convert: func() models.Conversion {
				r := s.ConvertTo(u)
				return models.Conversion{Target: u.Short(), Result: r.String(), Long: r.LongString()}
			}}, true
		},
		compare: func(other value) (int, bool, bool) {
			o, ok := other.raw.(units.Speed)
			if !ok {
				return 0, false, false
			}
			return s.Cmp(o), s.Equal(o), true
		},
	}, true
}

func parseValue(kind id.Kind, text string) (value, bool) {
	switch kind {
	case id.KindLength:
		return quantityValue(units.Lengths(), text)
	case id.KindTime:
		return quantityValue(units.Times(), text)
	case id.KindMass:
		return quantityValue(units.Masses(), text)
	case id.KindSpeed:
		return speedValue(text)
	}
	return value{}, false
}

func unitInfos[D units.Dimension](c units.Catalog[D]) []models.UnitInfo {
	all := c.All()
	out := make([]models.UnitInfo, 0, len(all))
	for _, u := range all {
		out = append(out, models.UnitInfo{
			Short:   u.Short(),
			Long:    u.Long(),
			Aliases: u.Aliases(),
			Ratio:   u.Ratio().String(),
		})
	}
	return out
}

func speedUnitInfos() []models.UnitInfo {
	all := units.Speeds().All()
	out := make([]models.UnitInfo, 0, len(all))
	for _, u := range all {
		out = append(out, models.UnitInfo{
			Short:   u.Short(),
			Long:    u.Long(),
			Aliases: u.Aliases(),
			Ratio:   u.Ratio().String(),
		})
	}
	return out
}
