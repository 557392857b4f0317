package service

// Praises are shown after a correct answer
var Praises = []string{
	"정답! 최고야!",
	"와! 진짜 잘했어!",
	"딩동댕~ 맞았어!",
	"완전 멋져!",
	"똑똑한데?",
	"계속 가볼까?",
	"오~ 빠르다!",
	"맞았어! 짝짝짝!",
	"대단해!",
	"정답! 칭찬 스티커 한 장!",
}

// Encouragements are shown after a wrong answer
var Encouragements = []string{
	"아쉽다! 다음은 맞힐 수 있어!",
	"괜찮아! 다시 해보자!",
	"조금만 더! 할 수 있어!",
	"틀려도 괜찮아 🙂",
	"다음 문제에서 만회하자!",
	"한 번 더 생각해볼까?",
	"연습하면 더 잘 돼!",
	"아깝다! 거의 맞았어!",
	"천천히 해도 돼!",
	"괜찮아, 계속 가자!",
}

// PromptPhrase is shown before the current question is answered
const PromptPhrase = "선택하면 바로 채점해줄게!"

func (s *Selector) feedback(correct bool) string {
	if correct {
		return s.Pick(Praises)
	}
	return s.Pick(Encouragements)
}
