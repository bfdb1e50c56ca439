package store

// Optimistic formalizes the intent / optimistic-apply / confirm-or-compensate
// flow for vote mutations. The delta is applied immediately, then confirm is
// run (typically the backend write). When confirm fails the mutation is
// rolled back and the error is returned to the caller.
//
// Rollback restores the observed effect, not the requested delta: a -1 on an
// item already at zero changes nothing, so its rollback changes nothing too.
func (s *FeedbackStore) Optimistic(feedbackID string, delta int, confirm func() error) error {
	before, held := s.Get(feedbackID)
	s.ApplyVote(feedbackID, delta)

	var applied int
	if held {
		after, _ := s.Get(feedbackID)
		applied = after.VotesCount - before.VotesCount
	}

	if err := confirm(); err != nil {
		s.ApplyVote(feedbackID, -applied)
		return err
	}
	return nil
}
