package engine

import (
	"math"
	"math/bits"

	"adaptive-chess/board"
)

// Score constants, in centipawns from White's point of view.
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0

	// Static evaluations are kept clear of the mate band.
	evalLimit = Checkmate - 1000
)

// Raw factor units, in centipawns.
const (
	activityPerSquare   = 4
	kingZoneAttacked    = -25
	kingShieldPiece     = 10
	lostCastlingRight   = -30
	kingInCheck         = -50
	centerOccupied      = 20
	centerAttack        = 10
	extendedCenterPiece = 8
	doubledPawnPenalty  = -20
	isolatedPawnPenalty = -15
	passedPawnBonus     = 30
	defendedPieceBonus  = 10
	mobilityPerMove     = 2
	tradePerPawnTraded  = 10
)

var (
	centerSquares  = bit(27) | bit(28) | bit(35) | bit(36) // d4 e4 d5 e5
	extendedCenter = uint64(0x00003C3C3C3C0000) &^ centerSquares
	fileMasks      [8]uint64
	adjacentFiles  [8]uint64
	// passedMasks[c][sq] holds the squares in front of a pawn on sq, on its
	// own and adjacent files, that enemy pawns must not occupy.
	passedMasks [2][64]uint64
)

func bit(sq int) uint64 { return 1 << uint(sq) }

func init() {
	for f := 0; f < 8; f++ {
		fileMasks[f] = 0x0101010101010101 << uint(f)
	}
	for f := 0; f < 8; f++ {
		if f > 0 {
			adjacentFiles[f] |= fileMasks[f-1]
		}
		if f < 7 {
			adjacentFiles[f] |= fileMasks[f+1]
		}
	}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		span := fileMasks[file] | adjacentFiles[file]
		var ahead, behind uint64
		for r := rank + 1; r < 8; r++ {
			ahead |= 0xFF << uint(8*r)
		}
		for r := rank - 1; r >= 0; r-- {
			behind |= 0xFF << uint(8*r)
		}
		passedMasks[board.White][sq] = span & ahead
		passedMasks[board.Black][sq] = span & behind
	}
}

// Terms holds the raw value of each factor as White minus Black, before
// weighting.
type Terms struct {
	Material          float64
	PieceActivity     float64
	KingSafety        float64
	CentralControl    float64
	PawnStructure     float64
	PieceCoordination float64
	Mobility          float64
	TradePreference   float64
}

// Weighted multiplies each term by its weight.
func (t Terms) Weighted(w Weights) Terms {
	return Terms{
		Material:          t.Material * w.Material,
		PieceActivity:     t.PieceActivity * w.PieceActivity,
		KingSafety:        t.KingSafety * w.KingSafety,
		CentralControl:    t.CentralControl * w.CentralControl,
		PawnStructure:     t.PawnStructure * w.PawnStructure,
		PieceCoordination: t.PieceCoordination * w.PieceCoordination,
		Mobility:          t.Mobility * w.Mobility,
		TradePreference:   t.TradePreference * w.TradePreference,
	}
}

// Sum adds the terms.
func (t Terms) Sum() float64 {
	return t.Material + t.PieceActivity + t.KingSafety + t.CentralControl +
		t.PawnStructure + t.PieceCoordination + t.Mobility + t.TradePreference
}

// Map returns the terms keyed by factor name.
func (t Terms) Map() map[string]float64 {
	return map[string]float64{
		FactorMaterial:          t.Material,
		FactorPieceActivity:     t.PieceActivity,
		FactorKingSafety:        t.KingSafety,
		FactorCentralControl:    t.CentralControl,
		FactorPawnStructure:     t.PawnStructure,
		FactorPieceCoordination: t.PieceCoordination,
		FactorMobility:          t.Mobility,
		FactorTradePreference:   t.TradePreference,
	}
}

// Evaluator scores positions with a weighted sum of eight factors.
// It is not safe for concurrent use while weights are being changed.
type Evaluator struct {
	weights    Weights
	tradeOwner board.Color
	moveBuf    []board.Move
}

// NewEvaluator returns an evaluator using w. Trade preference favors Black
// until SetTradeOwner says otherwise.
func NewEvaluator(w Weights) *Evaluator {
	if err := w.Validate(); err != nil {
		panic(err)
	}
	return &Evaluator{weights: w, tradeOwner: board.Black, moveBuf: make([]board.Move, 0, 128)}
}

// Weights returns a copy of the current weights.
func (e *Evaluator) Weights() Weights { return e.weights }

// SetWeights replaces the weights. Invalid vectors are rejected and the
// previous weights kept.
func (e *Evaluator) SetWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	e.weights = w
	return nil
}

// SetTradeOwner picks the side whose score rises with trade preference.
func (e *Evaluator) SetTradeOwner(c board.Color) { e.tradeOwner = c }

// TradeOwner returns the side favored by trade preference.
func (e *Evaluator) TradeOwner() board.Color { return e.tradeOwner }

// Evaluate returns the weighted score of b from White's point of view.
// Legal move generation for mobility applies and undoes moves, so b is
// borrowed mutably but left as it was found.
func (e *Evaluator) Evaluate(b *board.Board) int32 {
	total := e.Terms(b).Weighted(e.weights).Sum()
	return Clamp(int32(math.Round(total)), -evalLimit, evalLimit)
}

// Breakdown returns the weighted contribution of each factor.
func (e *Evaluator) Breakdown(b *board.Board) Terms {
	return e.Terms(b).Weighted(e.weights)
}

// Terms computes the unweighted factors.
func (e *Evaluator) Terms(b *board.Board) Terms {
	var t Terms
	t.Material = float64(b.Material(board.White) - b.Material(board.Black))
	t.PieceActivity = float64(activity(b, board.White) - activity(b, board.Black))
	t.KingSafety = float64(kingSafety(b, board.White) - kingSafety(b, board.Black))
	t.CentralControl = float64(centralControl(b, board.White) - centralControl(b, board.Black))
	t.PawnStructure = float64(pawnStructure(b, board.White) - pawnStructure(b, board.Black))
	t.PieceCoordination = float64(coordination(b, board.White) - coordination(b, board.Black))
	t.Mobility = float64(e.mobility(b, board.White) - e.mobility(b, board.Black))
	t.TradePreference = float64(tradeTerm(b, e.tradeOwner))
	return t
}

// activity counts squares reachable by non-pawn, non-king pieces.
func activity(b *board.Board, c board.Color) int {
	own := b.Occupancy(c)
	pieces := own &^ (b.Pieces(c, board.Pawn) | b.Pieces(c, board.King))
	n := 0
	for pieces != 0 {
		sq := board.Square(bits.TrailingZeros64(pieces))
		pieces &= pieces - 1
		n += bits.OnesCount64(b.AttacksFrom(sq) &^ own)
	}
	return n * activityPerSquare
}

func castledKingSquare(c board.Color, k board.Square) bool {
	home := 0
	if c == board.Black {
		home = 7
	}
	if k.Rank() != home {
		return false
	}
	f := k.File()
	return f <= 2 || f >= 6
}

func kingSafety(b *board.Board, c board.Color) int {
	k := b.KingSquare(c)
	if k == board.NoSquare {
		return 0
	}
	score := 0
	zone := board.KingZone(k)
	for sqs := zone; sqs != 0; {
		sq := board.Square(bits.TrailingZeros64(sqs))
		sqs &= sqs - 1
		if b.IsSquareAttacked(sq, c.Opp()) {
			score += kingZoneAttacked
		}
	}
	score += bits.OnesCount64(zone&b.Occupancy(c)) * kingShieldPiece
	if !castledKingSquare(c, k) {
		lost := 2 - bits.OnesCount8(uint8(b.CastlingRights().Of(c)))
		score += lost * lostCastlingRight
	}
	if b.InCheck(c) {
		score += kingInCheck
	}
	return score
}

func centralControl(b *board.Board, c board.Color) int {
	own := b.Occupancy(c)
	score := bits.OnesCount64(own&centerSquares) * centerOccupied
	score += bits.OnesCount64(own&extendedCenter) * extendedCenterPiece
	for sqs := centerSquares; sqs != 0; {
		sq := board.Square(bits.TrailingZeros64(sqs))
		sqs &= sqs - 1
		score += bits.OnesCount64(b.AttackersTo(sq, c)) * centerAttack
	}
	return score
}

func pawnStructure(b *board.Board, c board.Color) int {
	pawns := b.Pieces(c, board.Pawn)
	enemyPawns := b.Pieces(c.Opp(), board.Pawn)
	score := 0
	for f := 0; f < 8; f++ {
		if n := bits.OnesCount64(pawns & fileMasks[f]); n > 1 {
			score += (n - 1) * doubledPawnPenalty
		}
	}
	for p := pawns; p != 0; {
		sq := bits.TrailingZeros64(p)
		p &= p - 1
		if pawns&adjacentFiles[sq%8] == 0 {
			score += isolatedPawnPenalty
		}
		if enemyPawns&passedMasks[c][sq] == 0 {
			score += passedPawnBonus
		}
	}
	return score
}

// coordination rewards non-king pieces defended by a friendly piece.
func coordination(b *board.Board, c board.Color) int {
	pieces := b.Occupancy(c) &^ b.Pieces(c, board.King)
	n := 0
	for pieces != 0 {
		sq := board.Square(bits.TrailingZeros64(pieces))
		pieces &= pieces - 1
		if b.AttackersTo(sq, c) != 0 {
			n++
		}
	}
	return n * defendedPieceBonus
}

func (e *Evaluator) mobility(b *board.Board, c board.Color) int {
	e.moveBuf = b.LegalMovesInto(c, e.moveBuf[:0])
	return len(e.moveBuf) * mobilityPerMove
}

// tradeTerm grows with the material traded off since the position was
// loaded, signed toward owner.
func tradeTerm(b *board.Board, owner board.Color) int {
	traded := b.StartMaterial() - b.Material(board.White) - b.Material(board.Black)
	if traded <= 0 {
		return 0
	}
	score := traded / 100 * tradePerPawnTraded
	if owner == board.Black {
		return -score
	}
	return score
}
