package telegram

const (
	msgStart = "👋 欢迎使用智能待办助手！\n\n直接用一句话告诉我要做什么，比如：\n「明天下午3点开会」\n我会整理成任务草稿，确认后帮你创建。\n\n输入 /help 查看全部命令。"
	msgHelp  = "使用方法：\n\n• 直接发送任务描述，和我对话完善细节，回复「好的」即可创建\n• /parse <内容>：只解析，不创建\n• /cancel：放弃当前草稿，重新开始\n• /help：显示本帮助"

	msgCancelled    = "好的，已清空当前对话。"
	msgParseUsage   = "用法：/parse 明天下午3点开会"
	msgProcessError = "抱歉，处理你的消息时出错了，请稍后再试。"
)
