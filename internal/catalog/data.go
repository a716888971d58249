package catalog

// defaultProfiles is the built-in voice table. Reference audio lives under
// the voices/ asset tree keyed by profile name.
var defaultProfiles = []Profile{
	// Female voices
	{
		Name: "kore", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"warm", "friendly", "energetic", "young", "cheerful", "approachable", "enthusiastic"},
		ReferenceAudio: "voices/kore.wav",
		Description:    "Warm, friendly female voice, energetic and youthful",
	},
	{
		Name: "aoede", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyMedium, Formality: FormalityFormal,
		Keywords:       []string{"professional", "clear", "confident", "articulate", "strong", "authoritative"},
		ReferenceAudio: "voices/aoede.wav",
		Description:    "Professional female voice, clear and confident",
	},
	{
		Name: "pulcherrima", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneWarm, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"sophisticated", "elegant", "refined", "polished", "mature", "graceful"},
		ReferenceAudio: "voices/pulcherrima.wav",
		Description:    "Sophisticated female voice, elegant and refined",
	},
	{
		Name: "leda", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyLow, Formality: FormalityCasual,
		Keywords:       []string{"gentle", "soft", "calm", "soothing", "peaceful", "tender"},
		ReferenceAudio: "voices/leda.wav",
		Description:    "Gentle female voice, calm and soothing",
	},
	{
		Name: "despina", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"playful", "energetic", "bubbly", "cheerful", "animated", "lighthearted"},
		ReferenceAudio: "voices/despina.wav",
		Description:    "Playful female voice, energetic and bubbly",
	},
	{
		Name: "autonoe", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyLow, Formality: FormalityNeutral,
		Keywords:       []string{"mysterious", "sultry", "intriguing", "alluring", "sophisticated"},
		ReferenceAudio: "voices/autonoe.wav",
		Description:    "Mysterious female voice, sultry and intriguing",
	},
	{
		Name: "callirrhoe", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"bright", "energetic", "optimistic", "upbeat", "vibrant"},
		ReferenceAudio: "voices/callirrhoe.wav",
		Description:    "Bright female voice, energetic and optimistic",
	},
	{
		Name: "erinome", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"mature", "calm", "measured", "thoughtful", "composed"},
		ReferenceAudio: "voices/erinome.wav",
		Description:    "Mature female voice, calm and measured",
	},

	// Male voices
	{
		Name: "charon", Gender: GenderMale, Age: AgeOld,
		Tone: ToneCool, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"deep", "authoritative", "wise", "mature", "commanding", "gravitas"},
		ReferenceAudio: "voices/charon.wav",
		Description:    "Deep male voice, authoritative and wise",
	},
	{
		Name: "fenrir", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"strong", "confident", "powerful", "resolute", "determined", "masculine"},
		ReferenceAudio: "voices/fenrir.wav",
		Description:    "Strong male voice, confident and powerful",
	},
	{
		Name: "puck", Gender: GenderMale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"energetic", "playful", "casual", "laid-back", "cheerful", "relaxed"},
		ReferenceAudio: "voices/puck.wav",
		Description:    "Energetic male voice, playful and casual",
	},
	{
		Name: "zephyr", Gender: GenderNeutral, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"versatile", "adaptable", "clear", "neutral", "balanced"},
		ReferenceAudio: "voices/zephyr.wav",
		Description:    "Versatile neutral voice, adaptable and clear",
	},
	{
		Name: "achernar", Gender: GenderMale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"bright", "energetic", "upbeat", "optimistic", "youthful"},
		ReferenceAudio: "voices/achernar.wav",
		Description:    "Bright male voice, energetic and youthful",
	},
	{
		Name: "achird", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyLow, Formality: FormalityNeutral,
		Keywords:       []string{"calm", "steady", "reliable", "measured", "composed"},
		ReferenceAudio: "voices/achird.wav",
		Description:    "Calm male voice, steady and reliable",
	},
	{
		Name: "algenib", Gender: GenderMale, Age: AgeOld,
		Tone: ToneWarm, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"wise", "thoughtful", "patient", "mature", "reflective"},
		ReferenceAudio: "voices/algenib.wav",
		Description:    "Wise male voice, thoughtful and patient",
	},
	{
		Name: "algieba", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyMedium, Formality: FormalityFormal,
		Keywords:       []string{"confident", "assertive", "decisive", "leadership", "strong"},
		ReferenceAudio: "voices/algieba.wav",
		Description:    "Confident male voice, assertive and decisive",
	},
	{
		Name: "alnilam", Gender: GenderMale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"dynamic", "energetic", "vibrant", "enthusiastic", "animated"},
		ReferenceAudio: "voices/alnilam.wav",
		Description:    "Dynamic male voice, energetic and vibrant",
	},
	{
		Name: "enceladus", Gender: GenderNeutral, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"neutral", "balanced", "clear", "versatile"},
		ReferenceAudio: "voices/enceladus.wav",
		Description:    "Neutral voice, balanced and clear",
	},
	{
		Name: "gacrux", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"steady", "reliable", "grounded", "solid"},
		ReferenceAudio: "voices/gacrux.wav",
		Description:    "Steady male voice, reliable and grounded",
	},
	{
		Name: "iapetus", Gender: GenderMale, Age: AgeOld,
		Tone: ToneNeutral, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"mature", "experienced", "authoritative", "venerable"},
		ReferenceAudio: "voices/iapetus.wav",
		Description:    "Mature male voice, experienced and authoritative",
	},
	{
		Name: "laomedeia", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyLow, Formality: FormalityCasual,
		Keywords:       []string{"sweet", "gentle", "innocent", "tender", "kind"},
		ReferenceAudio: "voices/laomedeia.wav",
		Description:    "Sweet female voice, gentle and innocent",
	},
	{
		Name: "orus", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyHigh, Formality: FormalityNeutral,
		Keywords:       []string{"bold", "confident", "assertive", "fearless"},
		ReferenceAudio: "voices/orus.wav",
		Description:    "Bold male voice, confident and assertive",
	},
	{
		Name: "rasalgethi", Gender: GenderMale, Age: AgeOld,
		Tone: ToneWarm, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"wise", "sage", "philosophical", "contemplative"},
		ReferenceAudio: "voices/rasalgethi.wav",
		Description:    "Wise male voice, sage and philosophical",
	},
	{
		Name: "sadachbia", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyLow, Formality: FormalityFormal,
		Keywords:       []string{"elegant", "sophisticated", "refined", "cultured"},
		ReferenceAudio: "voices/sadachbia.wav",
		Description:    "Elegant female voice, sophisticated and refined",
	},
	{
		Name: "sadaltager", Gender: GenderFemale, Age: AgeYoung,
		Tone: ToneWarm, Energy: EnergyHigh, Formality: FormalityCasual,
		Keywords:       []string{"bright", "cheerful", "optimistic", "radiant"},
		ReferenceAudio: "voices/sadaltager.wav",
		Description:    "Bright female voice, cheerful and optimistic",
	},
	{
		Name: "schedar", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneWarm, Energy: EnergyMedium, Formality: FormalityCasual,
		Keywords:       []string{"warm", "motherly", "nurturing", "caring", "compassionate"},
		ReferenceAudio: "voices/schedar.wav",
		Description:    "Warm female voice, motherly and nurturing",
	},
	{
		Name: "sulafat", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyLow, Formality: FormalityNeutral,
		Keywords:       []string{"serene", "calm", "peaceful", "tranquil"},
		ReferenceAudio: "voices/sulafat.wav",
		Description:    "Serene female voice, calm and peaceful",
	},
	{
		Name: "umbriel", Gender: GenderMale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyLow, Formality: FormalityNeutral,
		Keywords:       []string{"mysterious", "deep", "brooding", "introspective"},
		ReferenceAudio: "voices/umbriel.wav",
		Description:    "Mysterious male voice, deep and brooding",
	},
	{
		Name: "vindemiatrix", Gender: GenderFemale, Age: AgeMiddle,
		Tone: ToneCool, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"confident", "strong", "assertive", "independent"},
		ReferenceAudio: "voices/vindemiatrix.wav",
		Description:    "Confident female voice, strong and assertive",
	},
	{
		Name: "zubenelgenubi", Gender: GenderNeutral, Age: AgeMiddle,
		Tone: ToneNeutral, Energy: EnergyMedium, Formality: FormalityNeutral,
		Keywords:       []string{"versatile", "adaptable", "neutral", "balanced"},
		ReferenceAudio: "voices/zubenelgenubi.wav",
		Description:    "Versatile neutral voice, adaptable and balanced",
	},
}
