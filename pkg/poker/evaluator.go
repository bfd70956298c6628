package poker

import (
	"fmt"
	"sort"

	"pokerbot-server/pkg/deck"
)

// Evaluation is the scored result of a five-card hand
// It is produced transiently at showdown and is never part of durable room state.
type Evaluation struct {
	Category Category  `json:"category"`
	Cards    deck.Hand `json:"cards"`
	Kickers  deck.Hand `json:"kickers"`

	// category-defining ranks followed by kicker ranks, used for comparison.
	// Two evaluations of the same category always have vectors of equal length.
	ranks []int
}

// Evaluate scores exactly five cards
func Evaluate(cards []*deck.Card) (*Evaluation, error) {
	if len(cards) != 5 {
		return nil, fmt.Errorf("evaluate requires exactly five cards, got %d", len(cards))
	}

	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	flush := true
	for _, card := range sorted[1:] {
		if card.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHigh(sorted)

	// group the sorted ranks into quads, trips, pairs, and unpaired cards.
	// singles come out in descending rank order
	var quads, trips, pairs, singles []int
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Rank == sorted[i].Rank {
			j++
		}

		switch j - i {
		case 4:
			quads = append(quads, sorted[i].Rank)
		case 3:
			trips = append(trips, sorted[i].Rank)
		case 2:
			pairs = append(pairs, sorted[i].Rank)
		default:
			singles = append(singles, sorted[i].Rank)
		}

		i = j
	}

	ev := &Evaluation{Cards: sorted}

	switch {
	case flush && straightHigh == deck.Ace:
		ev.Category = RoyalFlush
		ev.ranks = []int{straightHigh}
	case flush && straightHigh > 0:
		ev.Category = StraightFlush
		ev.ranks = []int{straightHigh}
	case len(quads) == 1:
		ev.Category = FourOfAKind
		ev.ranks = []int{quads[0], singles[0]}
		ev.Kickers = kickerCards(sorted, singles)
	case len(trips) == 1 && len(pairs) == 1:
		ev.Category = FullHouse
		ev.ranks = []int{trips[0], pairs[0]}
	case flush:
		ev.Category = Flush
		ev.ranks = handRanks(sorted)
	case straightHigh > 0:
		ev.Category = Straight
		ev.ranks = []int{straightHigh}
	case len(trips) == 1:
		ev.Category = ThreeOfAKind
		ev.ranks = append([]int{trips[0]}, singles...)
		ev.Kickers = kickerCards(sorted, singles)
	case len(pairs) == 2:
		ev.Category = TwoPair
		ev.ranks = []int{pairs[0], pairs[1], singles[0]}
		ev.Kickers = kickerCards(sorted, singles)
	case len(pairs) == 1:
		ev.Category = OnePair
		ev.ranks = append([]int{pairs[0]}, singles...)
		ev.Kickers = kickerCards(sorted, singles)
	default:
		ev.Category = HighCard
		ev.ranks = handRanks(sorted)
		ev.Kickers = sorted[1:].Clone()
	}

	return ev, nil
}

// BestOfSeven finds the best five-card hand from two hole cards and five
// community cards by evaluating all C(7,5)=21 subsets
func BestOfSeven(holeCards, community []*deck.Card) (*Evaluation, error) {
	if len(holeCards) != 2 {
		return nil, fmt.Errorf("expected two hole cards, got %d", len(holeCards))
	}

	if len(community) != 5 {
		return nil, fmt.Errorf("expected five community cards, got %d", len(community))
	}

	all := make(deck.Hand, 0, 7)
	all = append(all, holeCards...)
	all = append(all, community...)

	var best *Evaluation
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			subset := make(deck.Hand, 0, 5)
			for k := 0; k < len(all); k++ {
				if k != i && k != j {
					subset = append(subset, all[k])
				}
			}

			ev, err := Evaluate(subset)
			if err != nil {
				return nil, err
			}

			if best == nil || ev.Compare(best) > 0 {
				best = ev
			}
		}
	}

	return best, nil
}

// Compare returns 1 if e beats other, -1 if other beats e, and 0 on an exact tie.
// Ties within a category are broken rank by rank, kickers included.
func (e *Evaluation) Compare(other *Evaluation) int {
	if e.Category != other.Category {
		if e.Category > other.Category {
			return 1
		}

		return -1
	}

	for i, rank := range e.ranks {
		if rank > other.ranks[i] {
			return 1
		} else if rank < other.ranks[i] {
			return -1
		}
	}

	return 0
}

func (e *Evaluation) String() string {
	return e.Category.String()
}

// straightHigh returns the high rank of the straight the cards form, or 0.
// cards must be sorted by descending rank
func straightHigh(cards deck.Hand) int {
	consecutive := true
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank-1 {
			consecutive = false
			break
		}
	}

	if consecutive {
		return cards[0].Rank
	}

	// the wheel: the ace plays low under 5-4-3-2
	if cards[0].Rank == deck.Ace &&
		cards[1].Rank == 5 &&
		cards[2].Rank == 4 &&
		cards[3].Rank == 3 &&
		cards[4].Rank == 2 {
		return 5
	}

	return 0
}

func handRanks(cards deck.Hand) []int {
	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}

	return ranks
}

// kickerCards returns the cards whose ranks did not take part in the
// category-defining combination, in descending rank order
func kickerCards(cards deck.Hand, singles []int) deck.Hand {
	kickers := make(deck.Hand, 0, len(singles))
	for _, card := range cards {
		for _, rank := range singles {
			if card.Rank == rank {
				kickers = append(kickers, card)
				break
			}
		}
	}

	return kickers
}
