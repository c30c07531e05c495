package constant

// Chat message roles as stored in chat_logs. The LLM layer maps
// ChatMessageRoleModel to "assistant" before calling a provider.
const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// FallbackAnswer is the fixed refusal sentence. It must be emitted verbatim:
// the answer post-processor checks for it as a case-insensitive substring, so
// changing the wording here silently breaks that check.
const FallbackAnswer = "Maaf, saya tidak memiliki informasi yang cukup untuk menjawab pertanyaan ini."

// ContextualizeInstruction directs the model to rewrite a follow-up question
// into a standalone one. It must never answer the question.
const ContextualizeInstruction = "Diberikan riwayat percakapan dan pertanyaan pengguna terbaru " +
	"yang mungkin merujuk pada konteks dalam riwayat percakapan, " +
	"formulasikan pertanyaan mandiri yang dapat dipahami " +
	"tanpa riwayat percakapan. JANGAN menjawab pertanyaan, " +
	"cukup formulasikan ulang jika diperlukan dan kembalikan apa adanya."

// AnswerPromptTemplate takes (context, question). The refusal sentence is
// spelled out inside the prompt so the model can repeat it verbatim.
const AnswerPromptTemplate = `Kamu adalah asisten ahli di bidang gizi dan kesehatan masyarakat.
PENTING: KELUARKAN KEMAMPUAN MAKSIMALMU untuk menjawab pertanyaan dengan natural dan terstruktur SESUAI KONTEKS yang diberikan.
Jika jawabannya tidak ada didalam KONTEKS, HARUS balas dengan: ` + FallbackAnswer + `

Konteks:
%s

Pertanyaan:
%s

Jawaban:`
