package templates

// Ids of the built-in catalog entries other components refer to.
const (
	IntentGreeting           = "greeting"
	IntentGoodbye            = "goodbye"
	IntentAffirm             = "affirm"
	IntentDeny               = "deny"
	IntentAskMoreOptions     = "ask_more_options"
	IntentAskPreviousOptions = "ask_previous_options"
	IntentSelectOption       = "select_option"
	IntentDontCare           = "dont_care"
	IntentDone               = "done"
	IntentGiveUp             = "give_up"
	IntentAskOptions         = "ask_options"

	ResponseHowCanHelp  = "utter_ask_howcanhelp"
	ResponseBye         = "utter_bye"
	ResponseAskRephrase = "utter_ask_rephrase"
)

func seedIntents() []Templateable {
	return []Templateable{
		{ID: IntentGreeting, Name: "Greet", Placeholders: []string{}, Templates: []string{
			"Hello", "Hi", "Hey", "Hi there", "Hello there", "Good morning", "Good evening",
			"Hey bot", "Hello bot", "hey there", "hi!", "hello?", "howdy", "greetings",
			"whats up", "hey, lets talk", "yo", "good morning", "hi again", "hello friend",
		}},
		{ID: IntentGoodbye, Name: "Bye", Placeholders: []string{}, Templates: []string{
			"Bye", "Bye bye", "bye", "goodbye", "good bye", "see you", "see ya", "catch you later",
			"ciao", "farewell", "good night", "gotta go", "ok bye", "take care", "bye for now",
		}},
		{ID: IntentAffirm, Name: "Affirm", Placeholders: []string{}, Templates: []string{
			"Yes", "yes", "Yeah", "Yep", "Sure", "OK", "Okay", "ok", "Of course", "absolutely",
			"I agree", "I accept", "confirm", "go ahead", "go for it", "sounds good", "that is fine",
			"yes please", "alright", "definitely", "correct", "fine", "great", "perfect",
		}},
		{ID: IntentDeny, Name: "Deny", Placeholders: []string{}, Templates: []string{
			"No", "no", "Nope", "Nah", "no thanks", "no thank you", "not really", "never",
			"absolutely not", "definitely not", "I dont want to", "i decline", "deny", "not right now",
			"no way", "i dont think so", "not yet", "no sorry",
		}},
		{ID: IntentAskMoreOptions, Name: "Ask More Options", Placeholders: []string{}, Templates: []string{
			"Can you show me more options?", "Show me more", "What are other options",
			"Can I see more?", "i wanna see more", "what else do you have?",
		}},
		{ID: IntentAskPreviousOptions, Name: "Ask Previous Options", Placeholders: []string{}, Templates: []string{
			"Can you scroll back?", "Can you go back?", "Can you show me the previous options?",
			"it was one of the before", "show me the ones before that", "Go back",
		}},
		{ID: IntentSelectOption, Name: "Select option", Placeholders: []string{"choice"}, Templates: []string{
			"Ill go for option {choice}", "I want option {choice}", "I take the {choice} option",
			"Ill take the {choice} one",
		}},
		{ID: IntentDontCare, Name: "Dont Care", Placeholders: []string{}, Templates: []string{
			"I dont know", "Dont know", "I dont care", "Dont care", "No i dont know", "doesnt matter",
		}},
		{ID: IntentDone, Name: "Done", Placeholders: []string{}, Templates: []string{
			"Thanks", "Thank you", "Thanks!", "thank you so much", "cheers", "great thanks",
			"ok thanks", "perfect thank you", "thanks a lot", "thanks for the help", "thx",
		}},
		{ID: IntentGiveUp, Name: "Give Up", Placeholders: []string{}, Templates: []string{
			"Thats not what I wanted", "You cant help me",
		}},
		{ID: IntentAskOptions, Name: "Ask Options", Placeholders: []string{}, Templates: []string{
			"Can you show me the results", "What are my options", "I need to see the options",
		}},
	}
}

func seedResponses() []Templateable {
	return []Templateable{
		{ID: ResponseHowCanHelp, Name: "Greet", Placeholders: []string{}, Templates: []string{
			"Hey, how can i help you?", "What can I do for you?",
		}},
		{ID: ResponseBye, Name: "Bye", Placeholders: []string{}, Templates: []string{
			"Goodbye", "Bye",
		}},
		{ID: ResponseAskRephrase, Name: "Ask Rephrase", Placeholders: []string{}, Templates: []string{
			"Can you rephrase that?", "Sorry i didnt get that can you repeat that?",
		}},
	}
}

// Intent archetypes.
var (
	beginTransaction = archetype{
		idPrefix:     "begin_",
		name:         "Begin Transaction %s",
		templates:    []string{"I want to {predicate} {argument}", "Can you {predicate} {argument}?"},
		placeholders: []string{"predicate", "argument"},
	}
	informSelection = archetype{
		idPrefix:     "inform_form_",
		name:         "Inform Selection Values %s",
		templates:    []string{"The {table_nl} {column_nl} is {value}"},
		placeholders: []string{},
	}
	informChoice = archetype{
		idPrefix:     "inform_",
		name:         "Inform %s",
		templates:    []string{"Set {slot_name} to {choice}", "The {slot_name} is {choice}"},
		placeholders: []string{"slot_name", "choice"},
	}
	informPositive = archetype{
		idPrefix:     "inform_bool_",
		name:         "Inform Positive %s",
		templates:    []string{"Yes i want {slot_name}"},
		placeholders: []string{"slot_name"},
	}
	informNegative = archetype{
		idPrefix:     "inform_bool_",
		name:         "Inform Negative %s",
		templates:    []string{"No I do not want {slot_name}"},
		placeholders: []string{"slot_name"},
	}
)

// Response archetypes.
var (
	askParameter = archetype{
		idPrefix:     "utter_ask_parameter_",
		name:         "Ask Parameter %s",
		templates:    []string{"Okay therefor i need the {param_nl}"},
		placeholders: []string{"param_nl"},
	}
	askSelection = archetype{
		idPrefix: "utter_ask_",
		name:     "Ask Selection %s",
		templates: []string{
			"Can you please tell me the {table_nl}s {column_nl}",
			"Alright can you provide me the {table_nl}s {column_nl}",
		},
		placeholders: []string{"table_nl", "column_nl", "table", "column"},
	}
	askChoice = archetype{
		idPrefix:     "utter_ask_choice_",
		name:         "Ask Choice %s",
		templates:    []string{"Can you please tell me the {slot_nl}?", "Alright, can you provide me the {slot_nl}?"},
		placeholders: []string{"slot_nl"},
	}
	proposeTask = archetype{
		idPrefix:     "utter_propose_begin_transaction_",
		name:         "Propose Task %s",
		templates:    []string{"So you want to {predicate} {argument}?"},
		placeholders: []string{"predicate", "argument"},
	}
	proposeSelection = archetype{
		idPrefix:     "utter_propose_",
		name:         "Propose %s Selection",
		templates:    []string{"Is this the {table_nl} you were looking for?"},
		placeholders: []string{},
	}
	proposeChoice = archetype{
		idPrefix:     "utter_propose_choice_",
		name:         "Propose Choice %s",
		templates:    []string{"Is {choice} the correct {slot_nl}?"},
		placeholders: []string{"slot_nl", "choice"},
	}
	proposeTransaction = archetype{
		idPrefix:     "utter_propose_transaction_",
		name:         "Propose Transaction %s",
		templates:    []string{"Alright I am gonna {predicate} {argument} with the following information"},
		placeholders: []string{"predicate", "argument"},
	}
	successTransaction = archetype{
		idPrefix:     "utter_success_transaction_",
		name:         "Successful Transaction %s",
		templates:    []string{"Successfully {predicate} {argument}"},
		placeholders: []string{"predicate", "argument"},
	}
	failedTransaction = archetype{
		idPrefix:     "utter_failed_transaction_",
		name:         "Failed Transaction %s",
		templates:    []string{"Sorry i could not {predicate} {argument}: {transaction_error}"},
		placeholders: []string{"predicate", "argument", "transaction_error"},
	}
)
