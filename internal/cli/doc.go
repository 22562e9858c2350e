// Package cli реализует инструмент командной строки Optimata.
//
// # Обзор
//
// CLI — утилита для работы с файлами графов задач: валидация,
// просмотр, оптимизация и выполнение. Ядро движка (graph, optimize,
// executor) никакого файлового или сетевого интерфейса не имеет —
// CLI лишь внешний потребитель его контрактов.
//
// # Ключевые компоненты
//
// ## Команды
//
//	validate FILE  — разбор и валидация графа
//	show FILE      — таблица задач и зависимостей
//	optimize FILE  — прогон пайплайна, итоговый граф
//	run FILE       — оптимизация и выполнение, значения выходов
//
// ## Output
//
// Форматирование вывода: таблицы через tabwriter либо JSON
// при флаге --json. Данные идут в stdout, сообщения — в stderr.
//
// ## Config
//
// Необязательный YAML-файл (--config): allow-list быстрых функций,
// отключение отдельных проходов, число воркеров, CSE.
package cli
