package activity

// Verbs written by the macromate commands.
const (
	VerbAccountRegistered = "account.registered"
	VerbPasswordChanged   = "account.password.changed"
	VerbProfileUpdated    = "profile.updated"
	VerbMeasurementAdded  = "profile.measurement.recorded"
	VerbMacrosCalculated  = "macros.calculated"
	VerbRecipeCreated     = "recipe.created"
	VerbFoodLogged        = "diary.food.logged"
	VerbWaterLogged       = "diary.water.logged"
	VerbExerciseLogged    = "diary.exercise.logged"
	VerbChatMessageSent   = "chat.message.sent"
	VerbChatReset         = "chat.reset"
	VerbSettingUpdated    = "settings.updated"
)

// Channels group verbs by feature area.
const (
	ChannelAccounts  = "accounts"
	ChannelProfile   = "profile"
	ChannelNutrition = "nutrition"
	ChannelCatalog   = "catalog"
	ChannelDiary     = "diary"
	ChannelChat      = "chat"
	ChannelSettings  = "settings"
)
