package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandScrape は全バレエ団（引数指定時は1団のみ）を1回スクレイプすることを示す。
	CommandScrape Command = "scrape"
	// CommandWorker は定期スクレイプのワーカーモードで起動することを示す。
	CommandWorker Command = "worker"
	// CommandClear は指定バレエ団の公演データを削除することを示す。
	CommandClear Command = "clear"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// scrapeとclearはバレエ団IDを位置引数として受け取れるため、第2戻り値で返す。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) (Command, string) {
	if len(args) == 0 {
		return CommandServe, ""
	}

	switch args[0] {
	case "serve":
		return CommandServe, ""
	case "scrape":
		if len(args) > 1 {
			return CommandScrape, args[1]
		}
		return CommandScrape, ""
	case "worker":
		return CommandWorker, ""
	case "clear":
		if len(args) > 1 {
			return CommandClear, args[1]
		}
		return CommandClear, ""
	case "migrate":
		return CommandMigrate, ""
	case "healthcheck":
		return CommandHealthcheck, ""
	default:
		return CommandServe, ""
	}
}
