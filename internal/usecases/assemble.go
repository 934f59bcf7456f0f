package usecases

import "slack-archiver/internal/domain"

// assemble packages a finalized accumulator. File links are only exposed when
// the files flag is set.
func assemble(acc accumulator, flags domain.FeatureFlags) *domain.ComponentsAggregate {
	agg := &domain.ComponentsAggregate{
		MessageAndThread: acc.messageAndThread,
		FileName:         acc.permalink.FileName(),
		Users:            acc.users,
		Channel:          acc.channel,
		Teams:            acc.teams,
	}
	if flags.FetchFiles {
		agg.FileLinks = collectFileLinks(acc.messageAndThread.Thread)
	}
	return agg
}

// collectFileLinks maps "<user_team>-<file id>" to the file's private URL.
func collectFileLinks(thread []domain.Message) map[string]string {
	links := make(map[string]string)
	for _, m := range thread {
		for _, f := range m.Files {
			links[f.LinkKey()] = f.URLPrivate
		}
	}
	return links
}
