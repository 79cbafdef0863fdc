package book

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

// Level is a single order-book level. On the wire it is a [price, size]
// pair whose elements may be JSON numbers or quoted decimal strings.
type Level struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var pair [2]decimal.Decimal
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "decode book level")
	}
	l.Price = pair[0]
	l.Size = pair[1]
	return nil
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]decimal.Decimal{l.Price, l.Size})
}

// Snapshot is one raw order-book snapshot. It is constructed per request and
// carries no ordering guarantee from the source.
type Snapshot struct {
	Asks []Level `json:"asks"`
	Bids []Level `json:"bids"`
}

// LevelsFromStrings converts [price, size] string pairs, as delivered by
// order-book feeds, into levels.
func LevelsFromStrings(pairs [][2]string) ([]Level, error) {
	levels := make([]Level, 0, len(pairs))
	for _, pair := range pairs {
		price, err := decimal.NewFromString(pair[0])
		if err != nil {
			return nil, errors.Wrapf(err, "parse level price %q", pair[0])
		}
		size, err := decimal.NewFromString(pair[1])
		if err != nil {
			return nil, errors.Wrapf(err, "parse level size %q", pair[1])
		}
		levels = append(levels, Level{Price: price, Size: size})
	}
	return levels, nil
}
