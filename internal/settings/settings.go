// Package settings is the registry the Settings oracle draws from (C7):
// each entry names a real engine setting and a small, fixed set of
// candidate values (not an open-ended random value per setting), so the
// Settings oracle can reliably force a different code path between its
// two correlated runs. Seeded from query_oracle.cpp's test_settings table.
package settings

import "fuzzql/internal/randgen"

// Setting is one entry in the registry: a name and its candidate values.
// Most entries carry exactly two semantically opposite values (e.g. a
// boolean toggle), matching the original table.
type Setting struct {
	Name       string
	Candidates []string
}

// Registry is the full, ordered set of known settings. Order is fixed
// (declaration order, not map order) so picks stay deterministic given a
// seed.
var Registry = []Setting{
	{"join_algorithm", []string{"default", "hash"}},
	{"max_threads", []string{"1", "16"}},
	{"use_query_cache", []string{"0", "1"}},
	{"optimize_aggregation_in_order", []string{"0", "1"}},
	{"allow_experimental_analyzer", []string{"0", "1"}},
	{"max_block_size", []string{"1", "65505"}},
	{"max_insert_threads", []string{"0", "16"}},
	{"group_by_two_level_threshold", []string{"1", "100000"}},
	{"group_by_two_level_threshold_bytes", []string{"1", "50000000"}},
	{"distributed_aggregation_memory_efficient", []string{"0", "1"}},
	{"optimize_distinct_in_order", []string{"0", "1"}},
	{"optimize_read_in_order", []string{"0", "1"}},
	{"compile_expressions", []string{"0", "1"}},
	{"compile_aggregate_expressions", []string{"0", "1"}},
	{"min_count_to_compile_expression", []string{"0", "3"}},
	{"short_circuit_function_evaluation", []string{"enable", "disable"}},
	{"query_plan_enable_optimizations", []string{"0", "1"}},
	{"enable_multiple_prewhere_read_steps", []string{"0", "1"}},
	{"move_all_conditions_to_prewhere", []string{"0", "1"}},
	{"optimize_move_to_prewhere", []string{"0", "1"}},
	{"allow_prefetched_read_pool_for_remote_filesystem", []string{"0", "1"}},
	{"local_filesystem_read_method", []string{"pread", "mmap"}},
	{"remote_filesystem_read_method", []string{"read", "threadpool"}},
	{"input_format_parallel_parsing", []string{"0", "1"}},
	{"output_format_parallel_formatting", []string{"0", "1"}},
	{"max_parsing_threads", []string{"0", "16"}},
	{"cast_keep_nullable", []string{"0", "1"}},
	{"enable_positional_arguments", []string{"0", "1"}},
	{"aggregate_functions_null_for_empty", []string{"0", "1"}},
	{"allow_suspicious_low_cardinality_types", []string{"0", "1"}},
	{"allow_suspicious_fixed_string_types", []string{"0", "1"}},
	{"allow_nondeterministic_mutations", []string{"0", "1"}},
	{"max_final_threads", []string{"0", "16"}},
	{"do_not_merge_across_partitions_select_final", []string{"0", "1"}},
	{"merge_tree_min_rows_for_concurrent_read", []string{"1", "163840"}},
	{"merge_tree_min_bytes_for_concurrent_read", []string{"1", "251658240"}},
	{"partial_merge_join_optimizations", []string{"0", "1"}},
	{"allow_experimental_parallel_reading_from_replicas", []string{"0", "1"}},
	{"optimize_or_like_chain", []string{"0", "1"}},
	{"optimize_arithmetic_operations_in_aggregate_functions", []string{"0", "1"}},
	{"optimize_injective_functions_inside_uniq", []string{"0", "1"}},
	{"optimize_group_by_function_keys", []string{"0", "1"}},
	{"optimize_if_chain_to_multiif", []string{"0", "1"}},
	{"optimize_if_transform_strings_to_enum", []string{"0", "1"}},
	{"optimize_functions_to_subcolumns", []string{"0", "1"}},
	{"optimize_using_constraints", []string{"0", "1"}},
	{"optimize_substitute_columns", []string{"0", "1"}},
	{"optimize_append_index", []string{"0", "1"}},
	{"convert_query_to_cnf", []string{"0", "1"}},
	{"transform_null_in", []string{"0", "1"}},
	{"async_insert", []string{"0", "1"}},
	{"async_insert_threads", []string{"0", "16"}},
	{"wait_for_async_insert", []string{"0", "1"}},
	{"async_insert_max_data_size", []string{"1", "10485760"}},
	{"async_insert_busy_timeout_ms", []string{"1", "200"}},
	{"max_execution_time", []string{"0", "60"}},
	{"max_memory_usage", []string{"0", "10000000000"}},
	{"max_bytes_before_external_group_by", []string{"0", "1000000000"}},
	{"max_bytes_before_external_sort", []string{"0", "1000000000"}},
	{"max_rows_to_group_by", []string{"0", "1000000"}},
	{"group_by_overflow_mode", []string{"throw", "any"}},
	{"max_rows_to_sort", []string{"0", "1000000"}},
	{"sort_overflow_mode", []string{"throw", "break"}},
	{"max_result_rows", []string{"0", "1000000"}},
	{"result_overflow_mode", []string{"throw", "break"}},
	{"max_rows_in_distinct", []string{"0", "1000000"}},
	{"max_bytes_in_distinct", []string{"0", "1000000000"}},
	{"distinct_overflow_mode", []string{"throw", "break"}},
	{"max_rows_to_transfer", []string{"0", "1000000"}},
	{"transfer_overflow_mode", []string{"throw", "break"}},
	{"max_rows_in_set", []string{"0", "1000000"}},
	{"max_bytes_in_set", []string{"0", "1000000000"}},
	{"set_overflow_mode", []string{"throw", "break"}},
	{"max_rows_in_join", []string{"0", "1000000"}},
	{"max_bytes_in_join", []string{"0", "1000000000"}},
	{"join_overflow_mode", []string{"throw", "break"}},
	{"join_any_take_last_row", []string{"0", "1"}},
	{"join_use_nulls", []string{"0", "1"}},
	{"partial_merge_join_rows_in_right_blocks", []string{"1", "65536"}},
	{"default_max_bytes_in_join", []string{"0", "1000000000"}},
	{"max_rows_to_read", []string{"0", "1000000000"}},
	{"max_bytes_to_read", []string{"0", "1000000000"}},
	{"read_overflow_mode", []string{"throw", "break"}},
	{"max_rows_to_read_leaf", []string{"0", "1000000000"}},
	{"max_network_bandwidth", []string{"0", "1000000000"}},
	{"max_network_bytes", []string{"0", "1000000000"}},
	{"max_concurrent_queries_for_user", []string{"0", "10"}},
	{"priority", []string{"0", "5"}},
	{"os_thread_priority", []string{"0", "5"}},
	{"log_queries", []string{"0", "1"}},
	{"log_query_threads", []string{"0", "1"}},
	{"log_profile_events", []string{"0", "1"}},
	{"log_formatted_queries", []string{"0", "1"}},
	{"enable_global_with_statement", []string{"0", "1"}},
	{"allow_experimental_window_functions", []string{"0", "1"}},
	{"allow_experimental_object_type", []string{"0", "1"}},
	{"allow_experimental_variant_type", []string{"0", "1"}},
	{"allow_experimental_dynamic_type", []string{"0", "1"}},
	{"allow_experimental_json_type", []string{"0", "1"}},
	{"allow_experimental_full_text_index", []string{"0", "1"}},
	{"allow_experimental_inverted_index", []string{"0", "1"}},
	{"allow_experimental_live_view", []string{"0", "1"}},
	{"allow_experimental_refreshable_materialized_view", []string{"0", "1"}},
	{"allow_experimental_lightweight_delete", []string{"0", "1"}},
	{"allow_deprecated_syntax_for_merge_tree", []string{"0", "1"}},
	{"allow_deprecated_database_ordinary", []string{"0", "1"}},
	{"mutations_sync", []string{"0", "1"}},
	{"lightweight_deletes_sync", []string{"0", "1"}},
	{"alter_sync", []string{"0", "2"}},
	{"replication_alter_partitions_sync", []string{"0", "2"}},
	{"insert_quorum", []string{"0", "2"}},
	{"insert_quorum_parallel", []string{"0", "1"}},
	{"insert_quorum_timeout", []string{"0", "600000"}},
	{"select_sequential_consistency", []string{"0", "1"}},
	{"insert_deduplicate", []string{"0", "1"}},
	{"deduplicate_blocks_in_dependent_materialized_views", []string{"0", "1"}},
	{"optimize_on_insert", []string{"0", "1"}},
	{"materialized_views_ignore_errors", []string{"0", "1"}},
	{"enable_optimize_predicate_expression", []string{"0", "1"}},
	{"enable_optimize_predicate_expression_to_final_subquery", []string{"0", "1"}},
	{"optimize_skip_unused_shards", []string{"0", "1"}},
	{"optimize_skip_unused_shards_rewrite_in", []string{"0", "1"}},
	{"force_optimize_skip_unused_shards", []string{"0", "2"}},
	{"optimize_trivial_count_query", []string{"0", "1"}},
	{"optimize_trivial_approximate_count_query", []string{"0", "1"}},
	{"optimize_count_from_files", []string{"0", "1"}},
	{"optimize_respect_aliases", []string{"0", "1"}},
	{"optimize_rewrite_sum_if_to_count_if", []string{"0", "1"}},
	{"optimize_duplicate_order_by_and_distinct", []string{"0", "1"}},
	{"optimize_redundant_functions_in_order_by", []string{"0", "1"}},
	{"optimize_normalize_count_variants", []string{"0", "1"}},
	{"optimize_syntax_fuse_functions", []string{"0", "1"}},
	{"optimize_time_filter_with_preimage", []string{"0", "1"}},
	{"query_plan_filter_push_down", []string{"0", "1"}},
	{"query_plan_optimize_primary_key", []string{"0", "1"}},
	{"query_plan_read_in_order", []string{"0", "1"}},
	{"query_plan_aggregation_in_order", []string{"0", "1"}},
	{"query_plan_remove_redundant_sorting", []string{"0", "1"}},
	{"query_plan_remove_redundant_distinct", []string{"0", "1"}},
	{"query_plan_merge_expressions", []string{"0", "1"}},
	{"query_plan_split_filter", []string{"0", "1"}},
	{"query_plan_push_down_limit", []string{"0", "1"}},
	{"query_cache_ttl", []string{"0", "60"}},
	{"query_cache_min_query_runs", []string{"0", "3"}},
	{"query_cache_min_query_duration", []string{"0", "1000"}},
	{"query_cache_share_between_users", []string{"0", "1"}},
	{"query_cache_squash_partial_results", []string{"0", "1"}},
	{"enable_reads_from_query_cache", []string{"0", "1"}},
	{"enable_writes_to_query_cache", []string{"0", "1"}},
	{"allow_introspection_functions", []string{"0", "1"}},
	{"allow_nonconst_timezone_arguments", []string{"0", "1"}},
	{"allow_settings_after_format_in_insert", []string{"0", "1"}},
	{"send_logs_level", []string{"none", "trace"}},
	{"send_progress_in_http_headers", []string{"0", "1"}},
	{"http_wait_end_of_query", []string{"0", "1"}},
	{"http_response_buffer_size", []string{"0", "1048576"}},
	{"connect_timeout", []string{"1", "10"}},
	{"receive_timeout", []string{"1", "300"}},
	{"send_timeout", []string{"1", "300"}},
	{"poll_interval", []string{"1", "10"}},
	{"idle_connection_timeout", []string{"1", "3600"}},
	{"distributed_connections_pool_size", []string{"1", "1024"}},
	{"distributed_directory_monitor_sleep_time_ms", []string{"1", "1000"}},
	{"distributed_foreground_insert", []string{"0", "1"}},
	{"distributed_background_insert_batch", []string{"0", "1"}},
	{"distributed_product_mode", []string{"deny", "allow"}},
	{"prefer_localhost_replica", []string{"0", "1"}},
	{"fallback_to_stale_replicas_for_distributed_queries", []string{"0", "1"}},
	{"load_balancing", []string{"random", "nearest_hostname"}},
	{"max_replica_delay_for_distributed_queries", []string{"0", "300"}},
	{"skip_unavailable_shards", []string{"0", "1"}},
	{"parallel_replicas_for_non_replicated_merge_tree", []string{"0", "1"}},
	{"enable_parallel_replicas", []string{"0", "1"}},
	{"max_parallel_replicas", []string{"1", "4"}},
	{"cluster_for_parallel_replicas", []string{"default", "test_cluster"}},
	{"use_hedged_requests", []string{"0", "1"}},
	{"input_format_null_as_default", []string{"0", "1"}},
	{"input_format_defaults_for_omitted_fields", []string{"0", "1"}},
	{"input_format_skip_unknown_fields", []string{"0", "1"}},
	{"input_format_with_names_use_header", []string{"0", "1"}},
	{"input_format_import_nested_json", []string{"0", "1"}},
	{"input_format_values_interpret_expressions", []string{"0", "1"}},
	{"output_format_json_quote_64bit_integers", []string{"0", "1"}},
	{"output_format_json_quote_denormals", []string{"0", "1"}},
	{"output_format_pretty_max_rows", []string{"1", "10000"}},
	{"output_format_pretty_color", []string{"0", "1"}},
	{"output_format_write_statistics", []string{"0", "1"}},
	{"format_csv_allow_single_quotes", []string{"0", "1"}},
	{"format_csv_allow_double_quotes", []string{"0", "1"}},
	{"date_time_input_format", []string{"basic", "best_effort"}},
	{"date_time_output_format", []string{"simple", "iso"}},
	{"extremes", []string{"0", "1"}},
	{"totals_mode", []string{"before_having", "after_having_inclusive"}},
	{"totals_auto_threshold", []string{"0", "1"}},
	{"empty_result_for_aggregation_by_empty_set", []string{"0", "1"}},
	{"flatten_nested", []string{"0", "1"}},
	{"any_join_distinct_right_table_keys", []string{"0", "1"}},
	{"join_algorithm_partial_merge", []string{"0", "1"}},
	{"temporary_files_codec", []string{"LZ4", "ZSTD"}},
	{"min_bytes_to_use_direct_io", []string{"0", "1048576"}},
	{"min_bytes_to_use_mmap_io", []string{"0", "1048576"}},
	{"network_compression_method", []string{"LZ4", "ZSTD"}},
	{"network_zstd_compression_level", []string{"1", "15"}},
	{"enable_http_compression", []string{"0", "1"}},
	{"http_zlib_compression_level", []string{"1", "9"}},
	{"max_compress_block_size", []string{"65536", "1048576"}},
	{"min_compress_block_size", []string{"65536", "1048576"}},
	{"merge_tree_compact_parts_min_granules_to_multibuffer_read", []string{"1", "16"}},
	{"merge_tree_coarse_index_granularity", []string{"1", "8"}},
	{"merge_tree_use_const_size_tasks_for_remote_reading", []string{"0", "1"}},
	{"enable_vertical_final", []string{"0", "1"}},
	{"do_not_merge_across_partitions_select_final_light", []string{"0", "1"}},
	{"max_streams_to_max_threads_ratio", []string{"1", "4"}},
	{"max_streams_for_merge_tree_reading", []string{"0", "16"}},
	{"allow_asynchronous_read_from_io_pool_for_merge_tree", []string{"0", "1"}},
	{"read_in_order_two_level_merge_threshold", []string{"0", "100"}},
	{"cast_ipv4_ipv6_default_on_conversion_error", []string{"0", "1"}},
	{"function_implementation", []string{"default", "sse4.2"}},
	{"count_distinct_implementation", []string{"uniqExact", "uniq"}},
	{"cross_to_inner_join_rewrite", []string{"0", "1"}},
	{"allow_suspicious_indices", []string{"0", "1"}},
	{"check_query_single_value_result", []string{"0", "1"}},
	{"describe_include_subcolumns", []string{"0", "1"}},
	{"describe_extend_object_types", []string{"0", "1"}},
	{"apply_deleted_mask", []string{"0", "1"}},
	{"allow_experimental_database_materialized_mysql", []string{"0", "1"}},
	{"allow_experimental_database_materialized_postgresql", []string{"0", "1"}},
	{"use_structure_from_insertion_table_in_table_functions", []string{"0", "2"}},
}

// FirstSetting picks 1..3 settings and, for each, one of its candidate
// values at random, mirroring GenerateFirstSetting. It returns the chosen
// values along with the index of each entry within Registry so
// SecondSetting can reuse exactly the same set.
func FirstSetting(rng *randgen.Source) (picked []int, values []string) {
	n := rng.IntRange(1, 3)
	seen := map[int]bool{}
	for len(picked) < n {
		idx := rng.Intn(len(Registry))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, idx)
		values = append(values, randgen.Pick(rng, Registry[idx].Candidates))
	}
	return picked, values
}

// SecondSetting returns, for the same picked indices FirstSetting chose,
// the other candidate value for each — the "remember the other value"
// behavior GenerateSecondSetting relies on to guarantee the second run
// takes a different path than the first.
func SecondSetting(picked []int, firstValues []string) []string {
	second := make([]string, len(picked))
	for i, idx := range picked {
		cands := Registry[idx].Candidates
		other := cands[0]
		if other == firstValues[i] {
			other = cands[1]
		}
		second[i] = other
	}
	return second
}

// RenderSettingsClause formats picked settings as a SQL `SETTINGS a = b, ...`
// clause.
func RenderSettingsClause(picked []int, values []string) string {
	if len(picked) == 0 {
		return ""
	}
	s := "SETTINGS "
	for i, idx := range picked {
		if i > 0 {
			s += ", "
		}
		s += Registry[idx].Name + " = " + values[i]
	}
	return s
}
