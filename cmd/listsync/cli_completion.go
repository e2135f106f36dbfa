package main

import (
	"os"
	"strconv"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictScenarioFiles = predict.Or(predict.Files("*.yaml"), predict.Files("*.yml"))
	completer            = CreateCompleter(func(c *Completer) *complete.Command {
		return &complete.Command{
			Sub: map[string]*complete.Command{
				RUN_SUBCMD: {
					Flags: map[string]complete.Predictor{
						"v":        complete.PredictFunc(c.predictScenarioFileAfterSwitch),
						"no-color": complete.PredictFunc(c.predictScenarioFileAfterSwitch),
						"json":     complete.PredictFunc(c.predictScenarioFileAfterSwitch),
						"watch":    complete.PredictFunc(c.predictScenarioFileAfterSwitch),
					},
					Args: predictScenarioFiles,
				},
				CHECK_SUBCMD: {
					Flags: map[string]complete.Predictor{
						"v": complete.PredictFunc(c.predictScenarioFileAfterSwitch),
					},
					Args: predictScenarioFiles,
				},
				HELP_SUBCMD: {
					Args: predict.Set{RUN_SUBCMD, CHECK_SUBCMD},
				},
				INSTALL_COMPLETIONS_SUBCMD:   {},
				UNINSTALL_COMPLETIONS_SUBCMD: {},
			},
		}
	})
)

type Completer struct {
	*complete.Command
	currentCompLine  string
	currentCompPoint int //-1 if not retrieved
}

func CreateCompleter(create func(c *Completer) *complete.Command) *Completer {
	c := &Completer{currentCompPoint: -1}
	c.Command = create(c)
	return c
}

func (c *Completer) Complete(name string) {
	c.currentCompLine = os.Getenv("COMP_LINE")
	c.currentCompPoint, _ = strconv.Atoi(os.Getenv("COMP_POINT")) //ignore error because .Complete will also check the value

	if c.currentCompPoint > len(c.currentCompLine) {
		c.currentCompPoint = len(c.currentCompLine)
	}

	c.Command.Complete(name)
}

func (c *Completer) beforeCursorPoint() string {
	if c.currentCompPoint < 0 {
		return ""
	}
	return c.currentCompLine[:c.currentCompPoint]
}

func (c *Completer) predictScenarioFileAfterSwitch(prefix string) (results []string) {
	s := c.beforeCursorPoint()
	if s == "" {
		return
	}

	switch s[len(s)-1] {
	case '=':
		//The flag is a switch, it does not accept any value.
		return
	default:
		return predictScenarioFiles.Predict(prefix)
	}
}
