package ai

import "github.com/mascotchat/mascotchat/internal/model"

// 各模式固定的系统指令，排在调用方自定义系统提示之前
var modePrompts = map[string]string{
	model.ModeGeneral:       "You are a friendly chat assistant with an animated mascot companion. Keep replies warm, helpful and reasonably concise.",
	model.ModeCodeAssistant: "You are an expert programming assistant. Answer with working code where appropriate, explain briefly, and prefer idiomatic solutions.",
	model.ModeAnalyst:       "You are a careful analyst. Break problems down, reason step by step, and call out assumptions and uncertainty explicitly.",
}

// 情感打分提示词，要求模型只输出 JSON
const sentimentPrompt = `Rate the emotional sentiment of the following message on a scale from -1 (very negative) to 1 (very positive).
Respond with JSON only, in the exact form {"score": <number>}.

Message:
%s`

// 消息类型分类提示词
const classifyPrompt = `Classify the following message into exactly one category: general, code, or analysis.
"code" is for programming questions or code snippets, "analysis" is for data or reasoning tasks, everything else is "general".
Respond with the category word only.

Message:
%s`

// 追问建议提示词
const suggestionsPrompt = `Based on the conversation below, propose 3 short follow-up prompts the user might want to send next.
Each must be under 10 words. Respond with JSON only, in the exact form ["...", "...", "..."].

Conversation:
%s`

// 提供方故障时的降级回复
const (
	timeoutReply   = "I'm taking longer than usual to think right now. Please try sending your message again in a moment."
	rateLimitReply = "I'm handling a lot of messages at the moment. Please wait a little while and try again."
	genericReply   = "I ran into a hiccup while generating a response. Please try again."
)

// 建议生成失败时的固定兜底
var fallbackSuggestions = []string{
	"What can you help me with?",
	"Tell me something interesting",
	"Give me a tip for today",
}
