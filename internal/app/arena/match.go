package arena

import "math/rand/v2"

// dispatchQuestion picks a random question from the duel set, stores it as the
// room's active question and broadcasts it (answer withheld) to both
// participants, followed by an opponentStatus true signal. A vanished room is
// a silent no-op.
func (h *Hub) dispatchQuestion(code string) {
	room := h.rooms.get(code)
	if room == nil {
		return
	}

	q := h.questions[rand.IntN(len(h.questions))]
	room.Current = &q

	h.sendToRoom(room, EventNewQuestion, QuestionPayload{
		Question: q.Text,
		Options:  q.Options,
	})
	h.sendToRoom(room, EventOpponentStatus, true)
}

// handleAnswer scores c's submission against the room's active question.
// Only a participant's exactly-correct choice scores, and the new score goes
// to the scorer alone. Any submission, right or wrong, immediately advances
// the room to a fresh question; there is no round synchronization and no end
// condition.
func (h *Hub) handleAnswer(c *Client, payload AnswerPayload) {
	room := h.rooms.get(payload.RoomID)
	if room == nil || room.Current == nil {
		return
	}

	correct := room.Current.Answer == payload.Choice

	if correct && c.id == room.OwnerID {
		room.ScoreA++
		h.sendTo(c, EventScoreUpdate, room.ScoreA)
	}

	if correct && c.id == room.GuestID {
		room.ScoreB++
		h.sendTo(c, EventScoreUpdate, room.ScoreB)
	}

	h.dispatchQuestion(room.Code)
}
