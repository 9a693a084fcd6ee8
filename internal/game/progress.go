package game

const (
	initialActionDelay = 48
	linesPerLevel      = 10
)

// lineClearPoints is the base award per cleared-line count, scaled by level.
var lineClearPoints = [5]int{0, 100, 300, 500, 800}

// Progress keeps score, level and the automatic fall speed.
type Progress struct {
	Level  int
	Points int
	Lines  int

	// BackToBack counts consecutive four-line clears.
	BackToBack int

	delay int
}

func NewProgress() *Progress {
	return &Progress{
		Level: 1,
		delay: initialActionDelay,
	}
}

// OnPieceFall is called for every automatic one-row fall. It awards nothing.
func (p *Progress) OnPieceFall() {}

func (p *Progress) OnSoftDrop() {
	p.Points++
}

func (p *Progress) OnHardDrop(distance int) {
	p.Points += 2 * distance
}

// OnPieceStop scores a locked piece by the number of lines it cleared and
// checks for a level up. It must be called even when nothing was cleared.
func (p *Progress) OnPieceStop(cleared int) {
	switch {
	case cleared == 4:
		p.Points += lineClearPoints[4] * p.Level
		p.BackToBack++
		if p.BackToBack >= 2 {
			// 0.5 * 800 * b2b * level, applied on every tetris of the streak.
			p.Points += 400 * p.BackToBack * p.Level
		}
	case cleared >= 0 && cleared < 4:
		p.BackToBack = 0
		p.Points += lineClearPoints[cleared] * p.Level
	}
	p.Lines += cleared
	p.checkLevelUp()
}

func (p *Progress) checkLevelUp() {
	if p.Lines >= linesPerLevel*p.Level {
		p.delay -= delayStep(p.Level)
		p.Level++
	}
}

// delayStep is how many ticks the fall delay shrinks when leaving level.
func delayStep(level int) int {
	switch {
	case level <= 3:
		return 4
	case level <= 9:
		return 3
	case level <= 14:
		return 2
	case level <= 19:
		return 1
	default:
		return 0
	}
}

// ActionDelay returns the number of ticks between two automatic falls.
func (p *Progress) ActionDelay() int {
	return p.delay
}
