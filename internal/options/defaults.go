// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package options

// Names of the options understood by vbsc.
const (
	Help    = "help"
	Debug   = "debug"
	NoExit  = "noexit"
	NoInfo  = "noinfo"
	Args    = "args"
	Out     = "out"
	Filter  = "filter"
	Params  = "params"
	Threads = "threads"
	Engine  = "engine"
)

// DefaultFilter matches every procedure.
const DefaultFilter = ".*"

// NewDefault returns the registry of options understood by vbsc, with its usage examples.
func NewDefault() *Registry {
	r := NewRegistry()

	r.MustRegister(Spec{
		Name:    Help,
		Rule:    NewRule(`^[-/]*(help|\?)$`),
		Default: Flag(false),
		Help:    []string{"help : Provide help"},
	})
	r.MustRegister(Spec{
		Name:    Debug,
		Rule:    NewRule(`^debug$`),
		Default: Flag(false),
		Help:    []string{"debug : Breaks on errors, scripts run one at a time"},
	})
	r.MustRegister(Spec{
		Name:    NoExit,
		Rule:    NewRule(`^noexit$`),
		Default: Flag(false),
		Help:    []string{"noexit : The console remains open at the end"},
	})
	r.MustRegister(Spec{
		Name:    NoInfo,
		Rule:    NewRule(`^noinfo$`),
		Default: Flag(false),
		Help:    []string{"noinfo : Do not display the output of the scripts"},
	})
	r.MustRegister(Spec{
		Name:    Args,
		Rule:    NewRule(`^(?:args|a)=(?P<value>.*)$`),
		Default: List(),
		Help: []string{
			"args,a=value1,value2,... :",
			"Lists of arguments to send to the script (Comma to separate values).",
		},
	})
	r.MustRegister(Spec{
		Name:    Out,
		Rule:    NewRule(`^(?:out|o)=(?P<value>.*)$`),
		Default: Null(),
		Help: []string{
			"out,o=filepath :",
			"Log file. {DATETIME} adds the current date and time, {ID} the first free number.",
			"A .yaml or .yml extension writes a structured report.",
		},
	})
	r.MustRegister(Spec{
		Name:    Filter,
		Rule:    NewRule(`^(?:filter|f)=(?P<value>.*)$`),
		Default: String(DefaultFilter),
		Help: []string{
			"filter,f=pattern :",
			"Regular expression to filter procedures.",
		},
	})
	r.MustRegister(Spec{
		Name:    Params,
		Rule:    NewRule(`^(?:params|p)=(?P<value>.*)$`),
		Default: List(),
		Help: []string{
			"params,p=value1,value2,... :",
			"Lists of params to run each script with (Comma to separate values).",
		},
	})
	r.MustRegister(Spec{
		Name:    Threads,
		Rule:    NewRule(`^(?:threads|t)=(?P<value>.*)$`),
		Default: Int(1),
		Help: []string{
			"threads,t=n :",
			"Number of scripts to execute in parallel.",
		},
	})
	r.MustRegister(Spec{
		Name:    Engine,
		Rule:    NewRule(`^(?:engine|e)=(?P<value>.*)$`),
		Default: Null(),
		Help: []string{
			"engine,e=interpreter :",
			"Interpreter used to run the scripts. Defaults to cscript.",
		},
	})

	r.AddExample(`vbsc noexit args=firefox,chrome "c:\scripts\*.vbs" "c:\scripts\tests"`)
	r.AddExample(`vbsc o="c:\scripts\result-{DATETIME}.log" "c:\scripts\*.vbs"`)
	r.AddExample(`vbsc o="c:\scripts\result-{ID}.yaml" f=^Test "c:\scripts\*.vbs"`)
	r.AddExample(`vbsc t=4 "c:\scripts\*.vbs"`)

	return r
}
