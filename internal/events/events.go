package events

// SceneChangeEvent signals a game moving between playing and game over.
type SceneChangeEvent struct {
	Scene string
}

// RoundEvent signals a new round being presented.
type RoundEvent struct {
	Number    int
	Criterion string
}

type Bus struct {
	SceneChanges chan SceneChangeEvent
	Rounds       chan RoundEvent
}

func NewBus() *Bus {
	return &Bus{
		SceneChanges: make(chan SceneChangeEvent, 10),
		Rounds:       make(chan RoundEvent, 10),
	}
}
