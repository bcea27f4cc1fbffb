// Package preset holds layouts that ship with sprout.
package preset

import (
	"sort"

	"github.com/agentic-research/sprout/api"
)

// Default is used when no layout file or preset is named.
const Default = "flutter-screenshot-telegram"

var registry = map[string]func() *api.Tree{
	"flutter-screenshot-telegram": flutterScreenshotTelegram,
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (*api.Tree, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists the available presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// flutterScreenshotTelegram is the skeleton of a Flutter package that
// captures screenshots and shares them to Telegram.
func flutterScreenshotTelegram() *api.Tree {
	return api.New(
		api.Dir("lib",
			api.Dir("src",
				api.Dir("config",
					api.File("screenshot_config.dart", "// Configurações para captura de tela\n"),
				),
				api.Dir("enums",
					api.File("share_mode.dart", "// Enum para modos de compartilhamento\n"),
				),
				api.Dir("models",
					api.File("screenshot_data.dart", "// Modelo para dados da captura\n"),
				),
				api.Dir("services",
					api.File("screenshot_service.dart", "// Serviço de captura de tela\n"),
					api.File("screenshot_manager_service.dart", "// Gerenciamento de capturas\n"),
					api.File("storage_service.dart", "// Serviço de armazenamento\n"),
				),
				api.Dir("widgets",
					api.File("screenshot_wrapper.dart", "// Widget que encapsula a lógica de screenshot\n"),
					api.File("dual_button_wrapper.dart", "// Widget com dois botões para ações\n"),
				),
			),
			api.File("flutter_screenshot_telegram.dart", "// Biblioteca principal do pacote\n"),
		),
		api.Dir("example",
			api.Dir("lib",
				api.File("main.dart", "// Exemplo de uso do pacote\n"),
			),
		),
		api.Dir("test",
			api.File("flutter_screenshot_telegram_test.dart", "// Testes unitários do pacote\n"),
		),
	)
}
