package storage

// Change notification topics, one per collection. The bus carries no
// payload; a publish means "re-query this collection".
const (
	TopicJournal     = "journal-changed"
	TopicTodos       = "todos-changed"
	TopicWishes      = "wishes-changed"
	TopicSupports    = "supports-changed"
	TopicExperiences = "experiences-changed"
	TopicDelays      = "delays-changed"
	TopicChants      = "chants-changed"
	TopicHomework    = "homework-changed"
	TopicPomodoro    = "pomodoro-changed"
	TopicSettings    = "settings-changed"
)

// AllTopics lists every collection topic, for subscribers that watch the
// whole store.
func AllTopics() []string {
	return []string{
		TopicJournal, TopicTodos, TopicWishes, TopicSupports,
		TopicExperiences, TopicDelays, TopicChants, TopicHomework,
		TopicPomodoro, TopicSettings,
	}
}

// Notifier is the write-side face of the change bus. The sqlite store
// publishes through it after every successful mutation.
type Notifier interface {
	Publish(topic string)
}
