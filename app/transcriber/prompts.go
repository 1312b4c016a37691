package transcriber

const summaryPrompt = `Listen to this podcast episode and provide a 2-3 sentence summary of the main topics discussed. Focus on the key themes, guests, and important points covered. Do not include ads or introductions in the summary.`

const transcriptPrompt = `Transcribe this podcast episode with the following formatting:

1. Use clear paragraph breaks - start a new paragraph every 2-3 sentences or when the speaker/topic changes
2. If multiple speakers, label them clearly as **Speaker 1:**, **Speaker 2:**, or use their actual names if mentioned
3. Add a blank line between each speaker turn or major topic shift
4. If there are ads/sponsors, mark them as **[AD]** or **[SPONSOR]**
5. Make it readable and well-structured, not a wall of text

Provide a complete, accurate transcription with natural paragraph breaks.`
