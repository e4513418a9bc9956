package constant

// Fixed user-facing messages. These are part of the client contract; change
// them and the front end changes too.
const (
	MsgExtractionFailed = "Failed to extract text from the file. Please try again."
	MsgQuotaExceeded    = "Maximum number of file uploads reached."
	MsgRelayFailed      = "Failed to generate answer. Please try again."
	MsgSubmitInFlight   = "A question is already being answered. Please wait."
	MsgNoFileUploaded   = "No file uploaded."
	MsgChatRelayFailed  = "Error processing your request"
)

const TutorSystemPrompt = "You are an AI tutor specialized in various subjects and levels."

// TutorPromptTemplate is filled with subject, level, question and extracted
// text (in that order). The closing instruction makes the model end with a
// one-line summary the relay can parse out of the single completion.
const TutorPromptTemplate = `You are a tutor specialized in %s at %s level.
Question: %s

Additional context from extracted text:
%s

Please provide a clear and concise answer to the question, taking into account any relevant information from the extracted text. Include key concepts, step-by-step explanations if applicable, and any relevant examples to aid understanding.

End your response with a final line of the form:
Summary: <one sentence summarizing the answer>`
