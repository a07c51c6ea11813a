package ai

const resolverSystemPrompt = `You help a password assistant find which saved application a user means.
You receive the user's words and a list of saved application names, one per line.
Reply with exactly one name copied from the list, or NONE if no name is a plausible match.
Do not explain your answer.`

const resolverUserPrompt = `Saved applications:
{candidates}

User said: {query}`

const noneAnswer = "NONE"
